package build

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// IconLicenseHeader starts every generated icon file.
const IconLicenseHeader = `' Copyright 2019 Amazon.com, Inc. or its affiliates. All Rights Reserved.
' SPDX-License-Identifier: CC-BY-ND-2.0 (For details, see https://github.com/awslabs/aws-icons-for-plantuml/blob/main/LICENSE)
`

// AggregateCopyright starts every category all.puml file.
const AggregateCopyright = `'Copyright 2019 Amazon.com, Inc. or its affiliates. All Rights Reserved.
'SPDX-License-Identifier: MIT (For details, see https://github.com/awslabs/aws-icons-for-plantuml/blob/main/LICENSE)

`

// AggregateFileName is the per-category file including every icon.
const AggregateFileName = "all.puml"

// Images are the final PNGs embedded in an icon file. Dark is nil when the
// icon has no dark variant.
type Images struct {
	Light []byte
	Dark  []byte
}

// RenderPuml renders the .puml file of one icon.
func RenderPuml(rec pumlicons.IconRecord, sprite string, images Images) string {
	var b strings.Builder
	target := rec.Identifier
	color := rec.Color

	b.WriteString(IconLicenseHeader)
	b.WriteString(sprite)

	if !rec.SkipVisualAsset {
		fmt.Fprintf(&b, "!function $%sIMG($scale=1)\n", target)
		if images.Dark != nil {
			b.WriteString("!if %variable_exists(\"$AWS_DARK\") && ($AWS_DARK == true)\n")
			writeImgReturn(&b, images.Dark)
			b.WriteString("!else\n")
		}
		writeImgReturn(&b, images.Light)
		if images.Dark != nil {
			b.WriteString("!endif\n")
		}
		b.WriteString("!endfunction\n\n")
	}

	if rec.IsGroupContainer {
		quoted := color
		if strings.HasPrefix(color, "#") {
			quoted = `"` + color + `"`
		}
		fmt.Fprintf(&b, "$AWSGroupColoring(%sGroup, %s, %s)\n", target, quoted, rec.GroupBorderStyle)
		if rec.SkipVisualAsset {
			fmt.Fprintf(&b, "!define %sGroup(g_alias, g_label=\"%s\") $AWSDefineGroup(g_alias, g_label, %sGroup)\n", target, rec.GroupLabel, target)
		} else {
			fmt.Fprintf(&b, "!define %sGroup(g_alias, g_label=\"%s\") $AWSDefineGroup(g_alias, g_label, %s, %sGroup)\n", target, rec.GroupLabel, target, target)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "AWSEntityColoring(%s)\n", target)
	fmt.Fprintf(&b, "!define %[1]s(e_alias, e_label, e_techn) AWSEntity(e_alias, e_label, e_techn, %[2]s, %[1]s, %[1]s)\n", target, color)
	fmt.Fprintf(&b, "!define %[1]s(e_alias, e_label, e_techn, e_descr) AWSEntity(e_alias, e_label, e_techn, e_descr, %[2]s, %[1]s, %[1]s)\n", target, color)
	fmt.Fprintf(&b, "!define %[1]sParticipant(p_alias, p_label, p_techn) AWSParticipant(p_alias, p_label, p_techn, %[2]s, %[1]s, %[1]s)\n", target, color)
	fmt.Fprintf(&b, "!define %[1]sParticipant(p_alias, p_label, p_techn, p_descr) AWSParticipant(p_alias, p_label, p_techn, p_descr, %[2]s, %[1]s, %[1]s)\n", target, color)
	return b.String()
}

func writeImgReturn(b *strings.Builder, png []byte) {
	fmt.Fprintf(b, "!return \"<img data:image/png;base64,%s{scale=\"+$scale+\"}>\"\n", base64.StdEncoding.EncodeToString(png))
}

// Aggregate concatenates the icon files of one category, drops their
// comment lines and puts a single copyright block on top. files maps file
// name to content; files are concatenated in name order.
func Aggregate(files map[string]string) string {
	names := make([]string, 0, len(files))
	for name := range files {
		if name != AggregateFileName {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return AggregateCopyright
	}

	var data strings.Builder
	for _, name := range names {
		data.WriteString(files[name])
		data.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(AggregateCopyright)
	for _, line := range strings.Split(strings.TrimSuffix(data.String(), "\n"), "\n") {
		if strings.HasPrefix(line, "'") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
