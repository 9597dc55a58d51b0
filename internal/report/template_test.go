package report

import (
	"errors"
	"path"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/resolve"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

var (
	resourceRule = pumlicons.IconRule{
		Name:              "resource",
		CategoryPattern:   regexp.MustCompile(`[^.]*\/(?:Res_)(.*)\/(?:.*$)`),
		IdentifierPattern: regexp.MustCompile(`[^.]*Res_(?:Amazon.|AWS.)?(.*)_\d*\.svg$`),
	}
	generalRule = pumlicons.IconRule{
		Name:              "general",
		CategoryPattern:   regexp.MustCompile(`Res_(General)-Icons`),
		IdentifierPattern: regexp.MustCompile(`[^.]*Res_General-Icons\/Res_48_Light\/*Res_(?:Amazon.|AWS.)?(.*)_\d*_Light\.svg$`),
	}
	groupRule = pumlicons.IconRule{
		Name:              "groups",
		CategoryPattern:   regexp.MustCompile(`\/(Groups)\/`),
		IdentifierPattern: regexp.MustCompile(`Groups\/(.*)\.(?:png|touch)$`),
	}
	groupIconRule = pumlicons.IconRule{
		Name:              "group-icons",
		CategoryPattern:   regexp.MustCompile(`\/(GroupIcons)\/`),
		IdentifierPattern: regexp.MustCompile(`GroupIcons\/(.*)\.png$`),
	}
)

func templateSource(rule pumlicons.IconRule, relDir, name string) resolve.Source {
	p := path.Join("source", relDir, name)
	return resolve.Source{
		Descriptor: pumlicons.SourceDescriptor{Path: p, RelativeDir: relDir, Name: name, Kind: pumlicons.KindFromName(name)},
		Rule:       rule,
	}
}

func templateSources() []resolve.Source {
	return []resolve.Source{
		templateSource(resourceRule, "Res_Storage", "Res_Amazon-Simple-Storage-Service_Bucket_48.svg"),
		templateSource(resourceRule, "Res_Storage", "Res_Amazon-Simple-Storage-Service_Bucket_64.svg"),
		templateSource(resourceRule, "Res_Storage", "Res_Amazon-Elastic-Block-Store_Volume_48.svg"),
		templateSource(generalRule, "Res_General-Icons/Res_48_Light", "Res_Client_48_Light.svg"),
		templateSource(generalRule, "Res_General-Icons/Res_48_Light", "Res_Marketplace-Dark_48_Light.svg"),
		templateSource(groupRule, "Groups", "AWS-Cloud.png"),
		templateSource(groupIconRule, "GroupIcons", "Region.png"),
	}
}

func decodeTemplate(t *testing.T, data []byte) templateDocument {
	t.Helper()
	var doc templateDocument
	require.NoError(t, yaml.Unmarshal(data, &doc))
	return doc
}

func TestConfigTemplate(t *testing.T) {
	out, err := ConfigTemplate(templateSources())
	require.NoError(t, err)

	doc := decodeTemplate(t, out)
	require.Contains(t, doc.Categories, "Storage")
	storage := doc.Categories["Storage"]
	assert.Equal(t, "Endor", storage.Color)
	require.Len(t, storage.Icons, 3)

	assert.Equal(t, "ElasticBlockStoreVolume", storage.Icons[0].Target, "icons are sorted by target")
	assert.Equal(t, templateIcon{
		Source:    "Res_Amazon-Simple-Storage-Service_Bucket_48.svg",
		SourceDir: "Res_Storage",
		Target:    "SimpleStorageServiceBucket",
		Target2:   "simple-storage-service-bucket",
	}, storage.Icons[1])
	assert.Equal(t, duplicateTargetComment, storage.Icons[2].ZComment)
	assert.Equal(t, duplicateTarget2Comment, storage.Icons[2].ZComment2)
}

func TestConfigTemplate_General(t *testing.T) {
	out, err := ConfigTemplate(templateSources())
	require.NoError(t, err)

	general := decodeTemplate(t, out).Categories["General"]
	require.NotNil(t, general)
	require.Len(t, general.Icons, 1, "dark marketplace icon is not listed")
	assert.Equal(t, "Client", general.Icons[0].Target)
	assert.Equal(t, "client", general.Icons[0].Target2)
	assert.Equal(t, "Res_Client_48_Dark.svg", general.Icons[0].SourceDark)
	assert.Equal(t, "Res_General-Icons/Res_48_Dark", general.Icons[0].SourceDirDark)
}

func TestGeneralRuleMatchesReleaseRules(t *testing.T) {
	rs, err := config.DefaultRules()
	require.NoError(t, err)
	rules, err := rs.Compile("source")
	require.NoError(t, err)

	for _, rule := range rules {
		if rule.Name == "resource-general-light" {
			assert.Equal(t, rule.IdentifierPattern.String(), generalRule.IdentifierPattern.String())
			return
		}
	}
	t.Fatal("release rules have no resource-general-light rule")
}

func TestConfigTemplate_GroupsComeFromGroupBlock(t *testing.T) {
	out, err := ConfigTemplate(templateSources())
	require.NoError(t, err)

	groups := decodeTemplate(t, out).Categories[pumlicons.CategoryGroups]
	require.NotNil(t, groups)
	assert.Equal(t, "AvailabilityZone", groups.Icons[0].Target, "derived group entries are replaced by the maintained block")

	groupIcons := decodeTemplate(t, out).Categories[pumlicons.CategoryGroupIcons]
	require.NotNil(t, groupIcons)
	assert.Equal(t, "Nebula", groupIcons.Icons[0].Color)
}

func TestConfigTemplate_IsValidCuratedConfig(t *testing.T) {
	out, err := ConfigTemplate(templateSources())
	require.NoError(t, err)

	curated, err := config.ParseCurated(out)
	require.NoError(t, err)

	entry, _, ok := curated.Lookup("Res_Client_48_Light.svg", "General")
	require.True(t, ok)
	assert.True(t, entry.HasDarkVariant())
	assert.Equal(t, "#232F3E", curated.Defaults.Colors["Squid"])
}

func TestConfigTemplate_Empty(t *testing.T) {
	out, err := ConfigTemplate(nil)
	require.NoError(t, err)

	_, err = config.ParseCurated(out)
	require.NoError(t, err)
}

func TestConfigTemplate_PatternMismatch(t *testing.T) {
	_, err := ConfigTemplate([]resolve.Source{templateSource(resourceRule, "Other", "plain.svg")})
	require.Error(t, err)

	var mismatch *pumlicons.PatternMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "category", mismatch.Field)
}
