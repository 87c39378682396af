package age_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cupid-backend/internal/utils/age"
)

func TestAtBeforeAndAfterBirthday(t *testing.T) {
	dob := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	// day before the 25th birthday
	assert.Equal(t, 24, age.At(dob, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)))
	// the birthday itself
	assert.Equal(t, 25, age.At(dob, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)))
	// day after
	assert.Equal(t, 25, age.At(dob, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)))
}

func TestAtIsNotPlainYearSubtraction(t *testing.T) {
	dob := time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	// plain subtraction would say 26
	assert.Equal(t, 25, age.At(dob, now))
}
