// Package palette holds the AWS architecture icon color palette and the
// category-to-color assignments used by every generated artifact.
package palette

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Palette color names.
const (
	Nebula = "Nebula"
	Mars   = "Mars"
	Orbit  = "Orbit"
	Endor  = "Endor"
	Cosmos = "Cosmos"
	Smile  = "Smile"
	Galaxy = "Galaxy"
	Squid  = "Squid"
	White  = "White"
)

var colorValues = map[string]string{
	Nebula: "#C925D1",
	Mars:   "#DD344C",
	Orbit:  "#01A88D",
	Endor:  "#7AA116",
	Cosmos: "#E7157B",
	Smile:  "#ED7100",
	Galaxy: "#8C4FFF",
	Squid:  "#232F3E",
	White:  "#FFFFFF",
}

var categoryColors = map[string]string{
	"Analytics":                  Galaxy,
	"ArtificialIntelligence":     Orbit,
	"ApplicationIntegration":     Cosmos,
	"Blockchain":                 Smile,
	"BusinessApplications":       Mars,
	"CloudFinancialManagement":   Endor,
	"Compute":                    Smile,
	"ContactCenter":              Mars,
	"Containers":                 Smile,
	"CustomerEnablement":         Nebula,
	"Database":                   Nebula,
	"DeveloperTools":             Nebula,
	"EndUserComputing":           Orbit,
	"FrontEndWebMobile":          Mars,
	"Games":                      Galaxy,
	"General":                    Squid,
	"InternetOfThings":           Endor,
	"MachineLearning":            Orbit,
	"ManagementGovernance":       Cosmos,
	"MediaServices":              Smile,
	"MigrationTransfer":          Orbit,
	"MigrationModernization":     Orbit,
	"NetworkingContentDelivery":  Galaxy,
	"QuantumTechnologies":        Smile,
	"Robotics":                   Mars,
	"Satellite":                  Nebula,
	"SecurityIdentityCompliance": Mars,
	"Serverless":                 Galaxy,
	"Storage":                    Endor,
	"VRAR":                       Cosmos,
}

// groupIconColors are the colors of the legacy GroupIcons category.
var groupIconColors = map[string]string{
	"AutoScalingGroup":          Smile,
	"Cloud":                     Squid,
	"Cloudalt":                  Squid,
	"CorporateDataCenter":       Squid,
	"EC2InstanceContainer":      Smile,
	"ElasticBeanstalkContainer": Smile,
	"Region":                    Nebula,
	"ServerContents":            Squid,
	"SpotFleet":                 Smile,
	"StepFunction":              Cosmos,
	"VPCSubnetPrivate":          Nebula,
	"VPCSubnetPublic":           Endor,
	"VirtualPrivateCloudVPC":    Endor,
}

// Colors returns the palette color names in a stable order.
func Colors() []string {
	names := make([]string, 0, len(colorValues))
	for name := range colorValues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryColor returns the palette color assigned to category.
func CategoryColor(category string) (string, bool) {
	c, ok := categoryColors[category]
	return c, ok
}

// GroupIconColor returns the palette color of a legacy group icon.
func GroupIconColor(identifier string) (string, bool) {
	c, ok := groupIconColors[identifier]
	return c, ok
}

// Hex returns the hex value of a palette color.
func Hex(color string) (string, bool) {
	h, ok := colorValues[color]
	return h, ok
}

// Macro returns the PlantUML variable of a palette color, e.g.
// "$AWS_COLOR_NEBULA". White is the diagram background.
func Macro(color string) (string, bool) {
	if _, ok := colorValues[color]; !ok {
		return "", false
	}
	if color == White {
		return "$AWS_BG_COLOR", true
	}
	return "$AWS_COLOR_" + strcase.ToScreamingSnake(color), true
}

// CategoryMacro is Macro of the color assigned to category.
func CategoryMacro(category string) (string, bool) {
	c, ok := CategoryColor(category)
	if !ok {
		return "", false
	}
	return Macro(c)
}

// skippedInColorMap are categories without a color of their own.
var skippedInColorMap = map[string]bool{
	pumlicons.CategoryGroupIcons:    true,
	pumlicons.CategoryUncategorized: true,
	pumlicons.CategoryGroups:        true,
}

// CategoryColorMap maps each lower-cased category to its hex color.
// Categories without a palette color are an error.
func CategoryColorMap(categories []string) (map[string]string, error) {
	out := make(map[string]string, len(categories))
	for _, category := range categories {
		if skippedInColorMap[category] {
			continue
		}
		color, ok := CategoryColor(category)
		if !ok {
			return nil, fmt.Errorf("category %s has no palette color", category)
		}
		out[strings.ToLower(category)] = colorValues[color]
	}
	return out, nil
}

// CategoryColorJSON renders the category color map as the PlantUML
// preprocessor assignment "!$AWS_CATEGORY_COLORS = {...}".
func CategoryColorJSON(categories []string) (string, error) {
	m, err := CategoryColorMap(categories)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal category colors: %w", err)
	}
	return "!$AWS_CATEGORY_COLORS = " + string(data) + "\n", nil
}
