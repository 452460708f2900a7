package model

import "github.com/google/uuid"

// Object type discriminators. Every record carries one in its "type" field;
// CouchDB selector queries filter on it.
const (
	VoterObjectType    = "voter"
	BallotObjectType   = "ballot"
	ElectionObjectType = "election"
	CandidatObjectType = "candidat"
	PartiObjectType    = "parti"
	AreaObjectType     = "area"
)

// newEntityID returns a fresh ledger key. UUIDv4, so collisions are not a
// practical concern.
func newEntityID() string {
	return uuid.NewString()
}

// Voter is a registered elector. Each voter owns exactly one Ballot, created
// together with the voter record.
type Voter struct {
	ID                      string `json:"id"`
	Email                   string `json:"email"`
	Cin                     string `json:"cin"`
	FirstName               string `json:"firstName"`
	SecondName              string `json:"secondName"`
	IdentificationCardRecto string `json:"identificationCardRecto"`
	IdentificationCardVerso string `json:"identificationCardVerso"`
	AreaID                  string `json:"areaId"`
	BallotID                string `json:"ballotId"`
	Authorized              bool   `json:"authorized"`
	Rejected                bool   `json:"rejected"`
	Voted                   bool   `json:"voted"`
	Type                    string `json:"type"`
}

func NewVoter(email, cin, firstName, secondName, identificationCardRecto, identificationCardVerso, areaID, ballotID string) *Voter {
	return &Voter{
		ID:                      newEntityID(),
		Email:                   email,
		Cin:                     cin,
		FirstName:               firstName,
		SecondName:              secondName,
		IdentificationCardRecto: identificationCardRecto,
		IdentificationCardVerso: identificationCardVerso,
		AreaID:                  areaID,
		BallotID:                ballotID,
		Authorized:              false,
		Rejected:                false,
		Voted:                   false,
		Type:                    VoterObjectType,
	}
}

// Ballot is a single-use voting right for one election. BallotCast flips to
// true exactly once on a successful vote.
type Ballot struct {
	ID         string `json:"id"`
	BallotCast bool   `json:"ballotCast"`
	ElectionID string `json:"electionId"`
	Type       string `json:"type"`
}

func NewBallot(electionID string) *Ballot {
	return &Ballot{
		ID:         newEntityID(),
		BallotCast: false,
		ElectionID: electionID,
		Type:       BallotObjectType,
	}
}

// Election is a named voting event. StartDate and EndDate are day-granularity
// strings in DD-MM-YYYY form; votes are accepted strictly between them.
type Election struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Type      string `json:"type"`
}

func NewElection(name string, year int, startDate, endDate string) *Election {
	return &Election{
		ID:        newEntityID(),
		Name:      name,
		Year:      year,
		StartDate: startDate,
		EndDate:   endDate,
		Type:      ElectionObjectType,
	}
}

// Candidat stands in one election for one area under one party. Count starts
// at zero and only ever increments, by one per accepted vote.
type Candidat struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	SecondName  string `json:"secondName"`
	Description string `json:"description"`
	ElectionID  string `json:"electionId"`
	AreaID      string `json:"areaId"`
	PartiID     string `json:"partiId"`
	Count       int    `json:"count"`
	Type        string `json:"type"`
}

func NewCandidat(firstName, secondName, description, electionID, areaID, partiID string) *Candidat {
	return &Candidat{
		ID:          newEntityID(),
		FirstName:   firstName,
		SecondName:  secondName,
		Description: description,
		ElectionID:  electionID,
		AreaID:      areaID,
		PartiID:     partiID,
		Count:       0,
		Type:        CandidatObjectType,
	}
}

// Parti is a political party.
type Parti struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func NewParti(name string) *Parti {
	return &Parti{ID: newEntityID(), Name: name, Type: PartiObjectType}
}

// Area is a voting district.
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func NewArea(name string) *Area {
	return &Area{ID: newEntityID(), Name: name, Type: AreaObjectType}
}
