package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, "g5_system.db", AppConfig.Database.Path)
	assert.Len(t, AppConfig.Categories, 8)
	assert.Contains(t, AppConfig.TrainingTypes, "Técnico")
	assert.Equal(t, []string{AttendancePresent, AttendanceAbsent, AttendanceExcused}, AppConfig.AttendanceCodes)
	assert.Equal(t, "Lesão", AppConfig.AthleteFlags["DM"])
	assert.Equal(t, "Choveu", AppConfig.TrainingFlags["CH"])
}

func TestCategoryForDeterminism(t *testing.T) {
	require.NoError(t, Load())

	// каждый покрытый год даёт ровно одну категорию, стабильно
	for cat, years := range AppConfig.Categories {
		for _, y := range years {
			assert.Equal(t, cat, CategoryFor(y))
			assert.Equal(t, cat, CategoryFor(y)) // повторный вызов стабилен
		}
	}

	assert.Equal(t, "Sub 17", CategoryFor(2009))
	assert.Equal(t, "Sub 17", CategoryFor(2010))
	assert.Equal(t, "Sub 14", CategoryFor(2012))
	assert.Equal(t, "Sub 9", CategoryFor(2017))
}

func TestCategoryForSentinel(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, NoCategory, CategoryFor(2000))
	assert.Equal(t, NoCategory, CategoryFor(2025))
}

func TestCategoriesOrdered(t *testing.T) {
	require.NoError(t, Load())

	labels := Categories()
	require.Len(t, labels, 8)
	assert.Equal(t, "Sub 17", labels[0])
	assert.Equal(t, "Sub 9", labels[len(labels)-1])
}

func TestValidateCategoriesOverlap(t *testing.T) {
	err := validateCategories(map[string][]int{
		"Sub 15": {2011},
		"Sub 14": {2011, 2012},
	})
	require.Error(t, err)

	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))
}

func TestValidateCategoriesMalformed(t *testing.T) {
	var confErr *ConfigurationError

	err := validateCategories(map[string][]int{})
	require.Error(t, err)
	assert.True(t, errors.As(err, &confErr))

	err = validateCategories(map[string][]int{"": {2011}})
	require.Error(t, err)
	assert.True(t, errors.As(err, &confErr))

	err = validateCategories(map[string][]int{"Sub 15": {}})
	require.Error(t, err)
	assert.True(t, errors.As(err, &confErr))
}

func TestValidAthleteAndTrainingFlags(t *testing.T) {
	require.NoError(t, Load())

	assert.True(t, ValidAthleteFlag("DM"))
	assert.False(t, ValidAthleteFlag("XX"))
	assert.True(t, ValidTrainingFlag("FO"))
	assert.False(t, ValidTrainingFlag("DM"))
	assert.True(t, ValidAttendanceCode(AttendanceExcused))
	assert.False(t, ValidAttendanceCode("P"))
	assert.True(t, ValidTrainingType("Regenerativo"))
	assert.False(t, ValidTrainingType("Natação"))
}
