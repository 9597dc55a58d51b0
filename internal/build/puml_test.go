package build

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

func TestRenderPuml_Entity(t *testing.T) {
	rec := pumlicons.IconRecord{Category: "Compute", Identifier: "EC2", Color: "#ED7100"}
	sprite := "sprite $EC2 [64x64/16z] {\nxyz\n}\n"

	got := RenderPuml(rec, sprite, Images{Light: []byte("light")})

	want := IconLicenseHeader + sprite +
		"!function $EC2IMG($scale=1)\n" +
		"!return \"<img data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("light")) + "{scale=\"+$scale+\"}>\"\n" +
		"!endfunction\n\n" +
		"AWSEntityColoring(EC2)\n" +
		"!define EC2(e_alias, e_label, e_techn) AWSEntity(e_alias, e_label, e_techn, #ED7100, EC2, EC2)\n" +
		"!define EC2(e_alias, e_label, e_techn, e_descr) AWSEntity(e_alias, e_label, e_techn, e_descr, #ED7100, EC2, EC2)\n" +
		"!define EC2Participant(p_alias, p_label, p_techn) AWSParticipant(p_alias, p_label, p_techn, #ED7100, EC2, EC2)\n" +
		"!define EC2Participant(p_alias, p_label, p_techn, p_descr) AWSParticipant(p_alias, p_label, p_techn, p_descr, #ED7100, EC2, EC2)\n"
	assert.Equal(t, want, got)
}

func TestRenderPuml_DarkVariant(t *testing.T) {
	rec := pumlicons.IconRecord{Category: "General", Identifier: "Client", Color: "#232F3E"}

	got := RenderPuml(rec, "", Images{Light: []byte("light"), Dark: []byte("dark")})

	dark := strings.Index(got, base64.StdEncoding.EncodeToString([]byte("dark")))
	light := strings.Index(got, base64.StdEncoding.EncodeToString([]byte("light")))
	assert.Contains(t, got, "!if %variable_exists(\"$AWS_DARK\") && ($AWS_DARK == true)\n")
	assert.Contains(t, got, "!else\n")
	assert.Contains(t, got, "!endif\n!endfunction\n")
	assert.True(t, dark >= 0 && light > dark, "dark image comes first")
}

func TestRenderPuml_Groups(t *testing.T) {
	withIcon := pumlicons.IconRecord{
		Category: "Groups", Identifier: "AWSCloud", Color: "#232F3E",
		IsGroupContainer: true, GroupBorderStyle: "plain", GroupLabel: "AWS Cloud",
	}
	got := RenderPuml(withIcon, "sprite\n", Images{Light: []byte("x")})
	assert.Contains(t, got, "$AWSGroupColoring(AWSCloudGroup, \"#232F3E\", plain)\n")
	assert.Contains(t, got, "!define AWSCloudGroup(g_alias, g_label=\"AWS Cloud\") $AWSDefineGroup(g_alias, g_label, AWSCloud, AWSCloudGroup)\n")
	assert.NotContains(t, got, "AWSEntityColoring")

	placeholder := pumlicons.IconRecord{
		Category: "Groups", Identifier: "Generic", Color: "$AWS_FG_COLOR",
		IsGroupContainer: true, GroupBorderStyle: "dashed", GroupLabel: "Generic group", SkipVisualAsset: true,
	}
	got = RenderPuml(placeholder, "", Images{})
	assert.NotContains(t, got, "!function")
	assert.Contains(t, got, "$AWSGroupColoring(GenericGroup, $AWS_FG_COLOR, dashed)\n")
	assert.Contains(t, got, "!define GenericGroup(g_alias, g_label=\"Generic group\") $AWSDefineGroup(g_alias, g_label, GenericGroup)\n")
}

func TestAggregate(t *testing.T) {
	files := map[string]string{
		"B.puml":          "' header\nB()\n",
		"A.puml":          "' header\nA()\n",
		AggregateFileName: "stale\n",
	}

	got := Aggregate(files)
	assert.Equal(t, AggregateCopyright+"A()\n\nB()\n\n", got)
	assert.Equal(t, AggregateCopyright, Aggregate(nil))
}
