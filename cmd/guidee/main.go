package main

import (
	guideecmd "github.com/zoe5466/Gudiee-sub001/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	guideecmd.SetVersionInfo(version, commit)
	guideecmd.Execute()
}
