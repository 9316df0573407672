package main

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	configPath
	opaPath

	inputFile
	parentID

	logFormat
	runMode
)

const (
	modeServe   string = "serve"
	modeImport  string = "import"
	modePreview string = "preview"
	modeAnalyze string = "analyze"
)
