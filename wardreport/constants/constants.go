package constants

// Priesthood offices recognized by the report.  Any other value, including a
// missing office, is counted as UNORDAINED.
const (
	HighPriest = "HIGH_PRIEST"
	Elder      = "ELDER"
	Priest     = "PRIEST"
	Teacher    = "TEACHER"
	Deacon     = "DEACON"
	Unordained = "UNORDAINED"
)

var PriesthoodOffices = []string{HighPriest, Elder, Priest, Teacher, Deacon, Unordained}

// Temple recommend statuses reported by LCR.  Records with any other status
// are excluded from the recommend report entirely.
const (
	RecommendActive              = "ACTIVE"
	RecommendCanceled            = "CANCELED"
	RecommendExpiredLessThan1Mo  = "EXPIRED_LESS_THAN_1_MONTH"
	RecommendExpiredLessThan3Mos = "EXPIRED_LESS_THAN_3_MONTHS"
	RecommendExpiredOver3Mos     = "EXPIRED_OVER_3_MONTHS"
	RecommendExpiringNextMonth   = "EXPIRING_NEXT_MONTH"
	RecommendExpiringThisMonth   = "EXPIRING_THIS_MONTH"
	RecommendLostOrStolen        = "LOST_OR_STOLEN"
)

var RecommendStatuses = []string{
	RecommendActive,
	RecommendCanceled,
	RecommendExpiredLessThan1Mo,
	RecommendExpiredLessThan3Mos,
	RecommendExpiredOver3Mos,
	RecommendExpiringNextMonth,
	RecommendExpiringThisMonth,
	RecommendLostOrStolen,
}

const SexMale = "M"
const SexFemale = "F"

// This is set during compilation.  See the release workflow.
var Version = "latest"
