package projects

import buildprojects "github.com/pagehaven/go-builder/projects"

type Project = buildprojects.Project
