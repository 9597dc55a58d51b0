package resolve

import (
	"context"
	"errors"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/identity"
	"github.com/vvka-141/pumlicons/internal/logging"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

const curatedYAML = `Defaults:
  Colors:
    Smile: "#ED7100"
    Squid: "#232F3E"
    Endor: "#7AA116"
  Category:
    Color: Squid
  Group:
    BorderStyle: plain
  TargetMaxSize: 64
Categories:
  Storage:
    Color: Endor
    Icons:
      - Source: Arch_Amazon-Simple-Storage-Service_48.png
        Target: SimpleStorageService
      - Source: Res_Amazon-Simple-Storage-Service_General-purpose-bucket_48.svg
        Target: SimpleStorageServiceBucket
  Compute:
    Icons:
      - Source: Res_Amazon-EC2_Instance_48.svg
        Target: EC2Instance
        Color: "#FF0000"
      - Source: Res_Amazon-EC2_Instances_48.svg
        Target: EC2Instance
        Color: Unknown
  General:
    Icons:
      - Source: Res_Client_48_Light.svg
        SourceDir: Res_48_Light
        SourceDirDark: Res_48_Dark
        SourceDark: Res_Client_48_Dark.svg
        Target: Client
        Target2: client-curated
  Groups:
    Icons:
      - Source: AWS-Cloud.png
        Target: AWSCloud
        Color: Squid
        Label: AWS Cloud
        Group:
          BorderStyle: Dashed
      - Source: Generic group.touch
        Target: Generic
        Group:
          BorderStyle: wavy
`

func loadFixture(t *testing.T) (*config.Curated, []pumlicons.IconRule) {
	t.Helper()
	curated, err := config.ParseCurated([]byte(curatedYAML))
	require.NoError(t, err)

	rs, err := config.DefaultRules()
	require.NoError(t, err)
	rules, err := rs.Compile("source")
	require.NoError(t, err)
	return curated, rules
}

func descriptor(p string) pumlicons.SourceDescriptor {
	return pumlicons.SourceDescriptor{Path: p, Name: path.Base(p), Kind: pumlicons.KindFromName(p)}
}

func source(rules []pumlicons.IconRule, rule int, p string) Source {
	return Source{Descriptor: descriptor(p), Rule: rules[rule]}
}

func TestNewResolver_NilArgs(t *testing.T) {
	curated, _ := loadFixture(t)
	assert.Panics(t, func() { NewResolver(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewResolver(curated, nil) })
}

func TestResolve_CuratedEntry(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	rec, warns, err := r.Resolve(descriptor("source/official/Resource-Icons_06072024/Res_Storage/Res_Amazon-Simple-Storage-Service_General-purpose-bucket_48.svg"), rules[2])
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, pumlicons.WarningCategoryColor, warns[0].Kind, "falling back to the category color is recorded")

	assert.True(t, rec.Curated)
	assert.Equal(t, "Storage", rec.Category)
	assert.Equal(t, "SimpleStorageServiceBucket", rec.Identifier)
	assert.Equal(t, "simple-storage-service-bucket", rec.SecondaryIdentifier)
	assert.Equal(t, "#7AA116", rec.Color, "category color resolved through Defaults.Colors")
	assert.Equal(t, pumlicons.ResourceTargetSize, rec.TargetSize)
	assert.True(t, rec.Transparent)
	assert.False(t, rec.IsGroupContainer)
	assert.False(t, rec.HasDarkVariant())
	assert.Equal(t, identity.IconID("Storage", "SimpleStorageServiceBucket"), rec.ID)
}

func TestResolve_ArchitectureIconKeepsDefaultSize(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	rec, _, err := r.Resolve(descriptor("source/official/Architecture-Service-Icons_06072024/Arch_Storage/48/Arch_Amazon-Simple-Storage-Service_48.png"), rules[1])
	require.NoError(t, err)
	assert.Equal(t, "SimpleStorageService", rec.Identifier)
	assert.Equal(t, 64, rec.TargetSize)
	assert.False(t, rec.Transparent)
	assert.Equal(t, pumlicons.FileKindPNG, rec.Kind)
}

func TestResolve_Uncategorized(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	rec, warns, err := r.Resolve(descriptor("source/official/Resource-Icons_06072024/Res_Compute/Res_Amazon-EC2_Spot-Instance_48.svg"), rules[2])
	require.NoError(t, err)

	assert.False(t, rec.Curated)
	assert.Equal(t, pumlicons.CategoryUncategorized, rec.Category)
	assert.Equal(t, "EC2SpotInstance", rec.Identifier)
	assert.Equal(t, "ec2-spot-instance", rec.SecondaryIdentifier)
	assert.Equal(t, "#232F3E", rec.Color)
	assert.False(t, rec.Transparent, "only curated resource icons are transparent")
	require.Len(t, warns, 1)
	assert.Equal(t, pumlicons.WarningUncategorized, warns[0].Kind)
}

func TestResolve_ColorPriority(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	tests := []struct {
		name  string
		rule  int
		path  string
		color string
		warns []pumlicons.WarningKind
	}{
		{
			name:  "literal icon color",
			rule:  2,
			path:  "source/official/Resource-Icons_06072024/Res_Compute/Res_Amazon-EC2_Instance_48.svg",
			color: "#FF0000",
		},
		{
			name:  "unknown icon color name",
			rule:  2,
			path:  "source/official/Resource-Icons_06072024/Res_Compute/Res_Amazon-EC2_Instances_48.svg",
			color: pumlicons.FallbackColor,
			warns: []pumlicons.WarningKind{pumlicons.WarningUnknownColorName},
		},
		{
			name:  "default category color",
			rule:  3,
			path:  "source/official/Resource-Icons_06072024/Res_General-Icons/Res_48_Light/Res_Client_48_Light.svg",
			color: "#232F3E",
			warns: []pumlicons.WarningKind{pumlicons.WarningMissingColor},
		},
		{
			name:  "named icon color",
			rule:  4,
			path:  "source/unofficial/Groups_04282023/AWS-Cloud.png",
			color: "#232F3E",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, warns, err := r.Resolve(descriptor(tt.path), rules[tt.rule])
			require.NoError(t, err)
			assert.Equal(t, tt.color, rec.Color)

			var kinds []pumlicons.WarningKind
			for _, w := range warns {
				kinds = append(kinds, w.Kind)
			}
			assert.Equal(t, tt.warns, kinds)
		})
	}
}

func TestResolve_DarkVariant(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	rec, _, err := r.Resolve(descriptor("source/official/Resource-Icons_06072024/Res_General-Icons/Res_48_Light/Res_Client_48_Light.svg"), rules[3])
	require.NoError(t, err)

	assert.Equal(t, "General", rec.Category)
	assert.Equal(t, "Client", rec.Identifier)
	assert.Equal(t, "client-curated", rec.SecondaryIdentifier, "curated Target2 wins")
	assert.Equal(t, "source/official/Resource-Icons_06072024/Res_General-Icons/Res_48_Dark/Res_Client_48_Dark.svg", rec.DarkVariantPath)
	assert.True(t, rec.HasDarkVariant())
}

func TestResolve_Groups(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	rec, warns, err := r.Resolve(descriptor("source/unofficial/Groups_04282023/AWS-Cloud.png"), rules[4])
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.True(t, rec.IsGroupContainer)
	assert.Equal(t, "dashed", rec.GroupBorderStyle)
	assert.Equal(t, "AWS Cloud", rec.GroupLabel)
	assert.False(t, rec.SkipVisualAsset)

	rec, warns, err = r.Resolve(descriptor("source/unofficial/Groups_04282023/Generic group.touch"), rules[5])
	require.NoError(t, err)
	assert.True(t, rec.SkipVisualAsset)
	assert.Equal(t, "Generic", rec.Identifier)
	assert.Equal(t, "generic-group", rec.SecondaryIdentifier)
	assert.Equal(t, pumlicons.DefaultBorderStyle, rec.GroupBorderStyle, "unknown style falls back to plain")
	assert.Equal(t, pumlicons.DefaultGroupLabel, rec.GroupLabel)

	var kinds []pumlicons.WarningKind
	for _, w := range warns {
		kinds = append(kinds, w.Kind)
	}
	assert.Contains(t, kinds, pumlicons.WarningMissingGroupSetting)
	assert.Contains(t, kinds, pumlicons.WarningMissingColor)
}

func TestResolveAll_FlagsDuplicates(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	sources := []Source{
		source(rules, 2, "source/official/Resource-Icons_06072024/Res_Compute/Res_Amazon-EC2_Instance_48.svg"),
		source(rules, 2, "source/official/Resource-Icons_06072024/Res_Compute/Res_Amazon-EC2_Instances_48.svg"),
		source(rules, 2, "source/official/Resource-Icons_06072024/Res_Storage/Res_Amazon-Simple-Storage-Service_General-purpose-bucket_48.svg"),
		source(rules, 2, "source/official/Resource-Icons_06072024/Res_Spare/Res_Amazon-Simple-Storage-Service_General-purpose-bucket_48.svg"),
	}

	result, err := r.ResolveAll(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, result.Records, len(sources), "count in equals count out")

	assert.False(t, result.Records[0].DuplicateIdentifier)
	assert.True(t, result.Records[1].DuplicateIdentifier)
	assert.False(t, result.Records[1].DuplicateSecondary, "ec2-instances differs from ec2-instance")

	assert.Equal(t, pumlicons.CategoryUncategorized, result.Records[3].Category)
	assert.True(t, result.Records[3].DuplicateIdentifier)
	assert.True(t, result.Records[3].DuplicateSecondary)

	assert.Len(t, result.Duplicates(), 2)
	assert.Equal(t, []string{"Compute", "Storage", "Uncategorized"}, result.Categories())

	var dupWarnings int
	for _, w := range result.Warnings {
		if w.Kind == pumlicons.WarningDuplicateIdentifier {
			dupWarnings++
		}
	}
	assert.Equal(t, 2, dupWarnings)
}

func TestResolveAll_PatternMismatchAbortsBatch(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	sources := []Source{
		source(rules, 2, "source/official/Resource-Icons_06072024/Res_Compute/Res_Amazon-EC2_Instance_48.svg"),
		source(rules, 2, "source/official/Resource-Icons_06072024/Compute/EC2.svg"),
	}

	result, err := r.ResolveAll(context.Background(), sources)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, pumlicons.ErrPatternMismatch)

	var mismatch *pumlicons.PatternMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "source/official/Resource-Icons_06072024/Compute/EC2.svg", mismatch.Path)
}

func TestResolveAll_Canceled(t *testing.T) {
	curated, rules := loadFixture(t)
	r := NewResolver(curated, logging.NewNullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ResolveAll(ctx, []Source{source(rules, 4, "source/unofficial/Groups_04282023/AWS-Cloud.png")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSources(t *testing.T) {
	_, rules := loadFixture(t)
	scanned := [][]pumlicons.SourceDescriptor{
		{descriptor("a.png")},
		nil,
		{descriptor("b.svg"), descriptor("c.svg")},
	}

	sources := Sources(rules[:3], scanned)
	require.Len(t, sources, 3)
	assert.Equal(t, "category", sources[0].Rule.Name)
	assert.Equal(t, "resource", sources[1].Rule.Name)
	assert.Equal(t, "c.svg", sources[2].Descriptor.Name)
}
