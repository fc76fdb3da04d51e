package embed_data

import _ "embed"

//go:embed prompts/analyze_file.tmpl
var AnalyzeFilePrompt []byte

//go:embed prompts/project_overview.tmpl
var ProjectOverviewPrompt []byte

//go:embed prompts/project_structure.tmpl
var ProjectStructurePrompt []byte

//go:embed prompts/setup_instructions.tmpl
var SetupInstructionsPrompt []byte

//go:embed prompts/component_doc.tmpl
var ComponentDocPrompt []byte

//go:embed prompts/api_docs.tmpl
var APIDocsPrompt []byte

//go:embed templates/readme.tmpl
var ReadmeTemplate []byte
