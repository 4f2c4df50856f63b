package sdkerr

// Stable rule identifiers. Values never change once released.
const (
	RuleInvalidValue   = "ACC-ENC-001" // zero or unknown Value kind
	RuleNonFiniteFloat = "ACC-ENC-002" // NaN or infinity
	RuleInvalidUTF8    = "ACC-ENC-003" // string or key is not valid UTF-8
	RuleUnsupportedGo  = "ACC-ENC-004" // Go value has no Value counterpart

	RuleSyntax        = "ACC-PARSE-001"
	RuleDuplicateKey  = "ACC-PARSE-002"
	RuleTrailingData  = "ACC-PARSE-003"
	RuleBadNumber     = "ACC-PARSE-004"
	RuleNotCanonical  = "ACC-PARSE-005"
	RuleEmptyDocument = "ACC-PARSE-006"

	RuleMissingHeader    = "ACC-VAL-101"
	RuleMissingBody      = "ACC-VAL-102"
	RuleMissingEntry     = "ACC-VAL-103"
	RuleMissingEntryData = "ACC-VAL-104"
	RuleNotObject        = "ACC-VAL-105"
	RuleBadDigest        = "ACC-VAL-106"
	RuleMissingSigner    = "ACC-VAL-107"
	RuleSignatureType    = "ACC-VAL-108"
	RuleBadStrategy      = "ACC-VAL-109"
	RuleMetadataField    = "ACC-VAL-110"

	RuleKeyLength    = "ACC-KEY-001"
	RuleKeyHex       = "ACC-KEY-002"
	RulePublicKey    = "ACC-KEY-003"
	RuleLiteURL      = "ACC-KEY-004"
	RuleLiteChecksum = "ACC-KEY-005"

	RuleVectorMalformed = "ACC-VEC-001" // fixture file does not have the expected shape
	RuleVectorField     = "ACC-VEC-002" // required vector field missing or of the wrong type
)
