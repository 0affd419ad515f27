package ui

// DefaultCSS styles the configurator controls when no stylesheet file is available.
const DefaultCSS = `/* left column: part buttons, then the rotate toggle */
.button {
  left: 16px;
  top: 16px;
  width: 140px;
  height: 36px;
  gap: 8px;
  padding: 8px;
  font-size: 18px;
  background: #2c2c34;
  hover-background: #3a3a46;
  color: #e8e8ee;
  border: #4a4a58;
}
.button.pending { background: #5a4a1e; }
.button.active { background: #0a84ff; hover-background: #2b95ff; color: #ffffff; }
#rotate { background: #3b2f4f; }
#rotate.active { background: #8e44ad; }

/* right column: slot status */
.status { left: 100%; top: 16px; width: 240px; height: 84px; background: rgba(0, 0, 0, 0.45); }
.status-line { left: 100%; top: 20px; width: 240px; height: 24px; font-size: 16px; color: #cfcfd8; }
`
