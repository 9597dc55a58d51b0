package upgrade

// SupportedVersions lists, oldest first, every library version the upgrader
// knows the change history for. The last entry is the current release.
var SupportedVersions = []string{
	"v13.0",
	"v13.1",
	"v14.0",
	"v15.0",
	"v16.0",
	"v17.0",
	"v18.0",
	"v19.0",
}

// LatestVersion returns the newest supported version.
func LatestVersion() string {
	return SupportedVersions[len(SupportedVersions)-1]
}

// RenameKind tells whether a category was renamed, dropped, or left alone.
type RenameKind int

const (
	RenameNone RenameKind = iota
	RenameTo
	RenameRemoved
)

// Rename is the category-level change of a release.
type Rename struct {
	Kind RenameKind
	To   string
}

// CategoryChange is everything one release changed within one category.
// All maps are non-nil once loaded into an Engine.
type CategoryChange struct {
	Renamed  Rename
	Moved    map[string]string // icon -> new category
	Replaced map[string]string // old icon -> new icon
	Removed  map[string]struct{}
}

// ReleaseChanges maps category name to its change entry.
type ReleaseChanges map[string]CategoryChange

func renamedTo(category string) Rename {
	return Rename{Kind: RenameTo, To: category}
}

var categoryRemoved = Rename{Kind: RenameRemoved}

func iconSet(icons ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(icons))
	for _, icon := range icons {
		set[icon] = struct{}{}
	}
	return set
}

// legacyColorMacros maps color macros of older releases to their current form.
var legacyColorMacros = map[string]string{
	"AWS_COLOR":           "$AWS_COLOR_SQUID",
	"AWS_BG_COLOR":        "$AWS_BG_COLOR",
	"AWS_BORDER_COLOR":    "$AWS_BORDER_COLOR",
	"AWS_COLOR_BLUE":      "$AWS_COLOR_NEBULA",
	"AWS_COLOR_GREEN":     "$AWS_COLOR_ENDOR",
	"AWS_COLOR_ORANGE":    "$AWS_COLOR_SMILE",
	"AWS_COLOR_PINK":      "$AWS_COLOR_COSMOS",
	"AWS_COLOR_PURPLE":    "$AWS_COLOR_GALAXY",
	"AWS_COLOR_RED":       "$AWS_COLOR_MARS",
	"AWS_COLOR_TURQUOISE": "$AWS_COLOR_ORBIT",
}

// breakingChanges is the change history of the icon library, keyed by the
// release that introduced each change.
var breakingChanges = map[string]ReleaseChanges{
	"v13.0": {
		"ARVR":              {Renamed: renamedTo("VRAR")},
		"AWSCostManagement": {Renamed: renamedTo("CloudFinancialManagement")},
		"Compute": {Replaced: map[string]string{
			"Outposts1Uand2UServers": "Outpostsservers",
			"Outposts":               "Outpostsrack",
		}},
		"Storage": {Replaced: map[string]string{
			"FSxforWindowsFileServer":       "FSxforWFS",
			"SimpleStorageServiceS3Glacier": "SimpleStorageServiceS3GlacierFlexibleRetrieval",
			"S3OnOutpostsStorage":           "S3onOutposts",
			"StorageGatewayNonCachedVolume": "StorageGatewayNoncachedVolume",
			"ElasticFileSystem":             "EFS",
		}},
	},
	"v13.1": {
		"GroupIcons": {Renamed: renamedTo("Groups")},
	},
	"v14.0": {
		"Compute": {Replaced: map[string]string{
			"ThinkBoxDeadline": "ThinkboxDeadline",
			"ThinkBoxFrost":    "ThinkboxFrost",
			"ThinkBoxKrakatoa": "ThinkboxKrakatoa",
			"ThinkBoxSequoia":  "ThinkboxSequoia",
			"ThinkBoxStoke":    "ThinkboxStoke",
			"ThinkBoxXMesh":    "ThinkboxXMesh",
		}},
		"EndUserComputing": {Replaced: map[string]string{
			"WorkSpacesWorkSpacesWeb": "WorkSpacesWeb",
		}},
		"ManagementGovernance": {Replaced: map[string]string{
			"ManagedServiceforGrafana": "ManagedGrafana",
		}},
		"SecurityIdentityCompliance": {Replaced: map[string]string{
			"IdentityAccessManagementAWSIAMAccessAnalyzer": "IdentityAccessManagementIAMAccessAnalyzer",
			"SingleSignOn": "IAMIdentityCenter",
		}},
		"Storage": {Replaced: map[string]string{
			"BackupAWSBackupSupportforVMwareWorkloads": "BackupAWSBackupsupportforVMwareWorkloads",
		}},
	},
	"v15.0": {
		"Compute": {Removed: iconSet("EC2R5dInstance", "EC2RdnInstance")},
		"Containers": {Replaced: map[string]string{
			"RedHatOpenShift": "RedHatOpenShiftServiceonAWS",
		}},
		"Database": {Removed: iconSet("QuantumLedgerDatabase2")},
		"EndUserComputing": {Replaced: map[string]string{
			"WorkSpaces":    "WorkSpacesFamilyAmazonWorkSpaces",
			"WorkSpacesWeb": "WorkSpacesFamilyAmazonWorkSpacesWeb",
		}},
		"GameTech": {Renamed: renamedTo("Games")},
		"Storage": {Replaced: map[string]string{
			"CloudEndureDisasterRecovery": "ElasticDisasterRecovery",
		}},
	},
	"v16.0": {
		"Analytics": {Replaced: map[string]string{
			"KinesisFirehose": "KinesisDataFirehose",
		}},
		"BusinessApplications": {Removed: iconSet("ChimeVoiceConnector")},
		"Compute":              {Removed: iconSet("ApplicationAutoScaling", "Fargate2")},
		"Containers":           {Removed: iconSet("ElasticContainerServiceECSAnywhere")},
		"Games":                {Removed: iconSet("Lumberyard")},
		"General": {Replaced: map[string]string{
			"MarketplaceLight": "Marketplace",
			"MarketplaceDark":  "Marketplace",
		}},
		"ManagementGovernance": {Replaced: map[string]string{
			"PersonalHealthDashboard": "HealthDashboard",
		}},
		"MigrationTransfer":         {Removed: iconSet("ServerMigrationService")},
		"NetworkingContentDelivery": {Removed: iconSet("CloudDirectory2", "CloudWANVirtualPoP")},
		"VRAR":                      {Renamed: categoryRemoved},
	},
	"v17.0": {
		"Analytics": {Replaced: map[string]string{
			"KinesisDataAnalytics": "ManagedServiceforApacheFlink",
		}},
		"InternetOfThings": {Removed: iconSet("IoTEduKit")},
		"MachineLearning": {Replaced: map[string]string{
			"Omics": "HealthOmics",
		}},
	},
	"v18.0": {},
	"v19.0": {
		"ApplicationIntegration": {Moved: map[string]string{
			"APIGateway":               "NetworkingContentDelivery",
			"APIGatewayEndpoint":       "NetworkingContentDelivery",
			"ConsoleMobileApplication": "ManagementGovernance",
		}},
		"Analytics": {Replaced: map[string]string{
			"KinesisDataFirehose": "DataFirehose",
		}},
		"BusinessApplications": {Removed: iconSet("Honeycode")},
		"Compute": {
			Moved: map[string]string{
				"ComputeOptimizer": "ManagementGovernance",
				"ThinkboxDeadline": "MediaServices",
				"ThinkboxFrost":    "MediaServices",
				"ThinkboxKrakatoa": "MediaServices",
				"ThinkboxStoke":    "MediaServices",
				"ThinkboxXMesh":    "MediaServices",
			},
			Removed: iconSet("GenomicsCLI", "VMwareCloudonAWS", "ThinkboxSequoia"),
		},
		"EndUserComputing": {
			Replaced: map[string]string{
				"AppStream":                           "AppStream2",
				"WorkSpacesFamilyAmazonWorkSpacesWeb": "WorkSpacesFamilyAmazonWorkSpacesSecureBrowser",
			},
			Removed: iconSet("WorkLink"),
		},
		"InternetOfThings": {Removed: iconSet("IoTThingsGraph")},
		"ManagementGovernance": {
			Moved: map[string]string{
				"FaultInjectionSimulator": "DeveloperTools",
			},
			Replaced: map[string]string{
				"FaultInjectionSimulator": "FaultInjectionService",
			},
		},
		"MachineLearning": {
			Renamed: renamedTo("ArtificialIntelligence"),
			Replaced: map[string]string{
				"TorchServe": "PyTorchonAWS",
			},
		},
		"MigrationTransfer": {Renamed: renamedTo("MigrationModernization")},
		"Storage": {
			Replaced: map[string]string{
				"SimpleStorageServiceBucket": "SimpleStorageServiceGeneralpurposebucket",
			},
			Removed: iconSet("Snowmobile"),
		},
	},
}
