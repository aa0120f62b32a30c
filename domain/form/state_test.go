package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/core"
)

func activeNames(s *State) []string {
	var names []string
	for _, spec := range s.Active() {
		names = append(names, spec.Name)
	}
	return names
}

func TestNewStateHasNoSelection(t *testing.T) {
	s := NewState(catalog.Default())

	assert.Equal(t, "", s.Category())
	assert.Equal(t, []string{"Noise_Sigma"}, activeNames(s))
	assert.Equal(t, map[string]float64{
		"Noise_Sigma": 200,
		"L_param":     0,
		"k_param":     0,
		"t_range":     0,
		"Mass_Const":  0,
	}, s.Values())
}

func TestSelectActivatesExactlyTheCategorySubset(t *testing.T) {
	tests := []struct {
		category string
		active   []string
		values   map[string]float64
	}{
		{
			category: "LS2-1",
			active:   []string{"Noise_Sigma", "L_param", "k_param", "t_range"},
			values:   map[string]float64{"Noise_Sigma": 200, "L_param": 8000, "k_param": 0.7, "t_range": 60, "Mass_Const": 0},
		},
		{
			category: "PS3-1_KE",
			active:   []string{"Noise_Sigma", "Mass_Const", "t_range"},
			values:   map[string]float64{"Noise_Sigma": 200, "L_param": 0, "k_param": 0, "t_range": 60, "Mass_Const": 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			s := NewState(catalog.Default())
			require.NoError(t, s.Select(tt.category))

			assert.Equal(t, tt.category, s.Category())
			assert.Equal(t, tt.active, activeNames(s))
			assert.Equal(t, tt.values, s.Values())
		})
	}
}

func TestSwitchingCategoryResetsPreviousControls(t *testing.T) {
	s := NewState(catalog.Default())
	require.NoError(t, s.Select("LS2-1"))
	_, err := s.Set("L_param", 12000)
	require.NoError(t, err)
	_, err = s.Set("Noise_Sigma", 500)
	require.NoError(t, err)

	require.NoError(t, s.Select("PS3-1_KE"))

	assert.Equal(t, 0.0, s.Value("L_param"))
	assert.Equal(t, 0.0, s.Value("k_param"))
	assert.Equal(t, 60.0, s.Value("t_range"))
	assert.Equal(t, 500.0, s.Value("Noise_Sigma"), "shared control keeps its value")

	require.NoError(t, s.Select(""))
	assert.Equal(t, "", s.Category())
	assert.Equal(t, 0.0, s.Value("Mass_Const"))
}

func TestSelectUnknownCategory(t *testing.T) {
	s := NewState(catalog.Default())
	require.NoError(t, s.Select("LS2-1"))

	err := s.Select("ESS3-5")
	assert.ErrorIs(t, err, core.ErrUnknownCategory)
	assert.Equal(t, "LS2-1", s.Category(), "failed select leaves the state untouched")
}

func TestSetClampsToBounds(t *testing.T) {
	s := NewState(catalog.Default())
	require.NoError(t, s.Select("LS2-1"))

	got, err := s.Set("L_param", 999999)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, got)

	got, err = s.Set("k_param", -1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, got)

	got, err = s.Set("Noise_Sigma", 1234)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)

	for name, v := range s.Values() {
		spec, ok := s.activeSpec(name)
		if !ok {
			assert.Equal(t, 0.0, v, "%s should hold the placeholder", name)
			continue
		}
		assert.True(t, spec.Contains(v), "%s=%v escaped its bounds", name, v)
	}
}

func TestSetRejectsInactiveAndUnknown(t *testing.T) {
	s := NewState(catalog.Default())

	_, err := s.Set("L_param", 9000)
	assert.ErrorIs(t, err, core.ErrInactiveParameter, "nothing selected")

	require.NoError(t, s.Select("PS3-1_KE"))
	_, err = s.Set("k_param", 0.5)
	assert.ErrorIs(t, err, core.ErrInactiveParameter)

	_, err = s.Set("Temperature", 20)
	assert.ErrorIs(t, err, core.ErrUnknownParameter)

	assert.Equal(t, 0.0, s.Value("k_param"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		category string
		email    string
		wantErrs []error
	}{
		{"valid", "LS2-1", "teacher@school.edu", nil},
		{"missing category", "", "teacher@school.edu", []error{core.ErrNoCategory}},
		{"missing email", "PS3-1_KE", "  ", []error{core.ErrMissingEmail}},
		{"missing both", "", "", []error{core.ErrNoCategory, core.ErrMissingEmail}},
		{"malformed email", "LS2-1", "teacher-at-school", []error{core.ErrInvalidEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(catalog.Default())
			require.NoError(t, s.Select(tt.category))
			s.SetEmail(tt.email)

			err := s.Validate()
			if tt.wantErrs == nil {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
			assert.True(t, core.IsValidationError(err))
		})
	}
}

func TestRecordSnapshotsState(t *testing.T) {
	s := NewState(catalog.Default())
	require.NoError(t, s.Select("LS2-1"))
	s.SetEmail(" teacher@school.edu ")
	_, err := s.Set("t_range", 80)
	require.NoError(t, err)

	rec, err := s.Record()
	require.NoError(t, err)
	assert.False(t, rec.ID.String() == "")
	assert.Equal(t, "LS2-1", rec.Category)
	assert.Equal(t, "teacher@school.edu", rec.Email)
	assert.Equal(t, 80.0, rec.Values["t_range"])

	_, err = s.Set("t_range", 20)
	require.NoError(t, err)
	assert.Equal(t, 80.0, rec.Values["t_range"], "record must not alias the form state")
}

func TestRecordRejectsInvalidState(t *testing.T) {
	s := NewState(catalog.Default())
	_, err := s.Record()
	assert.ErrorIs(t, err, core.ErrNoCategory)
}
