package report

import _ "embed"

//go:embed templates/symbols_prefix.md
var symbolsPrefix string

//go:embed templates/config_defaults.yml
var configDefaults string

//go:embed templates/config_groups.yml
var configGroups string
