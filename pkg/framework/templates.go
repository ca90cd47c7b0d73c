package framework

// Boilerplate bodies for each supported framework. Templates interpolate only
// casings of the component name; nothing time- or host-dependent goes in, so
// generation stays reproducible.

const reactTemplate = `import React from 'react';

export interface {{.Pascal}}Props {
  title?: string;
}

const {{.Pascal}}: React.FC<{{.Pascal}}Props> = ({ title }) => {
  return (
    <div className="{{.Kebab}}">
      <h2>{title ?? '{{.Pascal}}'}</h2>
    </div>
  );
};

export default {{.Pascal}};
`

// Angular's own interpolation syntax collides with template delimiters, so the
// inline component template sticks to property bindings.
const angularTemplate = `import { Component, Input } from '@angular/core';

@Component({
  selector: 'app-{{.Kebab}}',
  template: ` + "`" + `
    <div class="{{.Kebab}}">
      <h2 [textContent]="title"></h2>
    </div>
  ` + "`" + `,
})
export class {{.Pascal}}Component {
  @Input() title = '{{.Pascal}}';
}
`

const pythonTemplate = `"""{{.Pascal}} component."""

from dataclasses import dataclass, field


@dataclass
class {{.Pascal}}:
    """Boilerplate {{.Pascal}} component."""

    title: str = "{{.Pascal}}"
    children: list = field(default_factory=list)

    def render(self) -> str:
        return f"<{{.Snake}} title={self.title!r} children={len(self.children)}>"
`

const nodeTemplate = `'use strict';

const express = require('express');

const router = express.Router();

router.get('/{{.Kebab}}', (req, res) => {
  res.json({ component: '{{.Camel}}' });
});

module.exports = router;
`

const javaTemplate = `/**
 * {{.Pascal}} component.
 */
public class {{.Pascal}} {

    private String title = "{{.Pascal}}";

    public String getTitle() {
        return title;
    }

    public void setTitle(String title) {
        this.title = title;
    }
}
`
