package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS shades with the whole rig: ambient, directional (from position toward the
	// origin), point and spot lights with range falloff, plus a Blinn-Phong highlight.
	litFS = `#version 330
#define MAX_LIGHTS 8
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform float lightCount;
uniform vec4 lightParams[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];
uniform vec3 lightPos[MAX_LIGHTS];
uniform vec2 lightCone[MAX_LIGHTS];
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;

float falloff(float d, float range, float decay) {
  if (range <= 0.0) return 1.0;
  return pow(clamp(1.0 - d / range, 0.0, 1.0), decay);
}

void main() {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 tint = colDiffuse.rgb;
  vec3 amb = vec3(0.0);
  vec3 lit = vec3(0.0);
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (float(i) >= lightCount) break;
    float kind = lightParams[i].x;
    vec3 radiance = lightColor[i] * lightParams[i].y;
    if (kind < 0.5) {
      amb += radiance;
      continue;
    }
    vec3 L;
    if (kind < 1.5) {
      L = normalize(lightPos[i]);
    } else {
      vec3 toLight = lightPos[i] - fragPosition;
      float d = length(toLight);
      L = toLight / max(d, 1e-4);
      radiance *= falloff(d, lightParams[i].z, lightParams[i].w);
      if (kind > 2.5) {
        float cosTheta = dot(-L, normalize(-lightPos[i]));
        radiance *= smoothstep(lightCone[i].x, lightCone[i].y, cosTheta);
      }
    }
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
    lit += radiance * (tint * NdotL + spec * step(0.0, NdotL));
  }
  vec3 color = amb * tint * 0.25 + lit;
  finalColor = vec4(min(color, vec3(1.0)), colDiffuse.a);
}
`
)

const (
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

// litShader is the mesh shader with its uniform locations looked up once.
type litShader struct {
	shader    rl.Shader
	viewPos   int32
	count     int32
	params    int32
	colors    int32
	positions int32
	cones     int32
	specPower int32
	specStr   int32
}

func loadLitShader() (*litShader, bool) {
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(sh) {
		return nil, false
	}
	return &litShader{
		shader:    sh,
		viewPos:   rl.GetShaderLocation(sh, "viewPos"),
		count:     rl.GetShaderLocation(sh, "lightCount"),
		params:    rl.GetShaderLocation(sh, "lightParams"),
		colors:    rl.GetShaderLocation(sh, "lightColor"),
		positions: rl.GetShaderLocation(sh, "lightPos"),
		cones:     rl.GetShaderLocation(sh, "lightCone"),
		specPower: rl.GetShaderLocation(sh, "specularPower"),
		specStr:   rl.GetShaderLocation(sh, "specularStrength"),
	}, true
}

// setUniforms uploads the camera position and light rig for this frame. Values are passed as
// fresh slices so cgo never sees Go memory that holds pointers.
func (s *litShader) setUniforms(viewPos [3]float32, b lightBlock) {
	n := int32(b.count)
	if s.viewPos >= 0 {
		rl.SetShaderValueV(s.shader, s.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if s.count >= 0 {
		rl.SetShaderValue(s.shader, s.count, []float32{b.count}, rl.ShaderUniformFloat)
	}
	if n == 0 {
		return
	}
	if s.params >= 0 {
		rl.SetShaderValueV(s.shader, s.params, b.params, rl.ShaderUniformVec4, n)
	}
	if s.colors >= 0 {
		rl.SetShaderValueV(s.shader, s.colors, b.colors, rl.ShaderUniformVec3, n)
	}
	if s.positions >= 0 {
		rl.SetShaderValueV(s.shader, s.positions, b.positions, rl.ShaderUniformVec3, n)
	}
	if s.cones >= 0 {
		rl.SetShaderValueV(s.shader, s.cones, b.cones, rl.ShaderUniformVec2, n)
	}
	if s.specPower >= 0 {
		rl.SetShaderValue(s.shader, s.specPower, []float32{specularPower}, rl.ShaderUniformFloat)
	}
	if s.specStr >= 0 {
		rl.SetShaderValue(s.shader, s.specStr, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}
