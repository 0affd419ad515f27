package viewer

// Frame runs one iteration of the render loop: apply finished loads, advance auto-rotation,
// update the orbit controls and draw. Rotation advances a fixed step per frame, so its
// speed follows the display refresh rate.
func (v *Viewer) Frame() {
	v.parts.Poll()

	if v.rotating {
		if g := v.parts.Group(); g != nil {
			g.Rotation[1] += v.rotationStep
		}
	}

	v.controls.Update()
	v.camera.Position = v.controls.Position
	v.camera.Target = v.controls.Target

	v.renderer.Render(v.scene, v.camera, v.lights)
}
