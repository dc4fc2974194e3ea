package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudy() Study {
	return Study{
		ID:                 "M-6-001",
		InitiativeTypeCode: "A_6.001",
		Quarter:            "Q2.24",
		VerticalCode:       "FLW",
		TitleShort:         "Home",
		Techniques:         []string{"Encuesta"},
	}
}

func TestValidate(t *testing.T) {
	s := validStudy()
	require.NoError(t, s.Validate())

	s.Quarter = "2024"
	s.ID = "X-1"
	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalidStudy)
	assert.Contains(t, err.Error(), "quarter failed quarter")
	assert.Contains(t, err.Error(), "id failed studyid")

	s = validStudy()
	s.Links = []Link{{Label: "Doc"}}
	err = s.Validate()
	require.ErrorIs(t, err, ErrInvalidStudy)
	assert.Contains(t, err.Error(), "url failed required")
}

func TestValidStudyID(t *testing.T) {
	assert.True(t, ValidStudyID("M-0-001"))
	assert.True(t, ValidStudyID("M-0-1200"))
	assert.False(t, ValidStudyID("M-10-001"))
	assert.False(t, ValidStudyID("M-1-01"))
}

func TestEnsureCollectionsSerialisesEmptyLists(t *testing.T) {
	var s Study
	s.EnsureCollections()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"techniques":[]`)
	assert.Contains(t, string(raw), `"links":[]`)
	assert.NotContains(t, string(raw), "parentId")
}

func TestCloneIsDeep(t *testing.T) {
	s := validStudy()
	s.Roles.UXR = []string{"a"}
	c := s.Clone()
	c.Techniques[0] = "changed"
	c.Roles.UXR[0] = "b"
	assert.Equal(t, "Encuesta", s.Techniques[0])
	assert.Equal(t, "a", s.Roles.UXR[0])
}
