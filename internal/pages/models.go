package pages

import buildpages "github.com/pagehaven/go-builder/pages"

type Page = buildpages.Page
