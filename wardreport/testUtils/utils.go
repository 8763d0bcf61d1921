package testUtils

import (
	"fmt"
	"log"
	"testing"

	"github.com/lrnselfreliance/wardreport/conf"
	"github.com/lrnselfreliance/wardreport/wardreport/models"
)

// PrintSeparator prints a line of stars to stdout
func PrintSeparator() {
	fmt.Println("**********************************************************************************")
}

func setEnv(why, key, value string) {
	if err := conf.SetEnv(&testing.T{}, key, value); err != nil {
		log.Printf("Error %s env value %s to %s\n", why, key, value)
	}
}

// SetAndRestoreEnvKey replaces the current value of the env var key,
// returning a function which can be used to restore the original value
func SetAndRestoreEnvKey(key, value string) func() {
	originalValue := conf.GetEnv(key)
	setEnv("setting", key, value)
	return func() {
		setEnv("restoring", key, originalValue)
	}
}

func IntPtr(i int) *int {
	return &i
}

func StrPtr(s string) *string {
	return &s
}

// MakeMember returns a roster entry with every required field populated.
// Tests mutate the result for the case under test.
func MakeMember(uuid string, legacyID int64, age int, sex string, isMember bool) models.Member {
	return models.Member{
		UUID:                      uuid,
		LegacyCmisID:              legacyID,
		HouseholdAnchorPersonUUID: uuid,
		Age:                       IntPtr(age),
		Sex:                       StrPtr(sex),
		IsMember:                  isMember,
	}
}
