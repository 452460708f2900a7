package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetDiscriminatorsAndDefaults(t *testing.T) {
	voter := NewVoter("a@b.tld", "K1", "A", "B", "r", "v", "area-1", "ballot-1")
	assert.Equal(t, VoterObjectType, voter.Type)
	assert.False(t, voter.Authorized)
	assert.False(t, voter.Rejected)
	assert.False(t, voter.Voted)

	ballot := NewBallot("election-1")
	assert.Equal(t, BallotObjectType, ballot.Type)
	assert.False(t, ballot.BallotCast)
	assert.Equal(t, "election-1", ballot.ElectionID)

	election := NewElection("E", 2024, "01-01-2024", "31-12-2024")
	assert.Equal(t, ElectionObjectType, election.Type)

	candidat := NewCandidat("A", "B", "", "election-1", "area-1", "parti-1")
	assert.Equal(t, CandidatObjectType, candidat.Type)
	assert.Equal(t, 0, candidat.Count)

	assert.Equal(t, PartiObjectType, NewParti("P").Type)
	assert.Equal(t, AreaObjectType, NewArea("A").Type)
}

func TestEntityIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewBallot("e").ID
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id generated")
		seen[id] = true
	}
}

func TestVoterSerializesAllDeclaredFields(t *testing.T) {
	voter := NewVoter("a@b.tld", "K1", "A", "B", "r", "v", "area-1", "ballot-1")
	data, err := json.Marshal(voter)
	require.NoError(t, err)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &record))
	for _, field := range []string{
		"id", "email", "cin", "firstName", "secondName",
		"identificationCardRecto", "identificationCardVerso",
		"areaId", "ballotId", "authorized", "rejected", "voted", "type",
	} {
		assert.Contains(t, record, field)
	}
}
