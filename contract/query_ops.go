package contract

import (
	"encoding/json"
	"fmt"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var queryLogger = flogging.MustGetLogger("evote.queryengine")

// --- Query Engine ---

// queryRaw issues a rich query and drains the cursor to exhaustion, returning
// the raw stored values. A value that is not valid JSON aborts the drain with
// a partial-result error: the records parsed so far are still returned
// alongside an error wrapping ErrMalformedRecord.
func (s *ElectionSmartContract) queryRaw(ctx contractapi.TransactionContextInterface, queryString string) ([]json.RawMessage, error) {
	resultsIterator, err := ctx.GetStub().GetQueryResult(queryString)
	if err != nil {
		return nil, fmt.Errorf("rich query failed: %w", err)
	}
	defer resultsIterator.Close()

	results := []json.RawMessage{}
	for resultsIterator.HasNext() {
		queryResponse, iterErr := resultsIterator.Next()
		if iterErr != nil {
			return results, fmt.Errorf("failed to advance query cursor: %w", iterErr)
		}
		if len(queryResponse.Value) == 0 {
			continue
		}
		if !json.Valid(queryResponse.Value) {
			return results, fmt.Errorf("%w: key '%s' holds bytes that are not valid JSON", ErrMalformedRecord, queryResponse.Key)
		}
		results = append(results, json.RawMessage(queryResponse.Value))
	}
	return results, nil
}

// buildSelectorQuery produces a CouchDB query of shape
// {"selector":{"type":<objectType>, <field>:<value>, ...}}. An empty
// objectType with no fields yields the match-everything selector {}.
func buildSelectorQuery(objectType string, fields map[string]interface{}) (string, error) {
	selector := map[string]interface{}{}
	if objectType != "" {
		selector["type"] = objectType
	}
	for field, value := range fields {
		selector[field] = value
	}
	query, err := json.Marshal(map[string]interface{}{"selector": selector})
	if err != nil {
		return "", fmt.Errorf("failed to marshal selector query: %w", err)
	}
	return string(query), nil
}

// querySelector builds a selector for the object type plus equality fields
// and runs it.
func (s *ElectionSmartContract) querySelector(ctx contractapi.TransactionContextInterface, objectType string, fields map[string]interface{}) ([]json.RawMessage, error) {
	queryString, err := buildSelectorQuery(objectType, fields)
	if err != nil {
		return nil, err
	}
	queryLogger.Debugf("Running selector query: %s", queryString)
	return s.queryRaw(ctx, queryString)
}

// --- Typed query helpers ---

func (s *ElectionSmartContract) queryVoters(ctx contractapi.TransactionContextInterface, fields map[string]interface{}) ([]*model.Voter, error) {
	raw, err := s.querySelector(ctx, model.VoterObjectType, fields)
	if err != nil {
		return nil, err
	}
	voters := []*model.Voter{}
	for _, record := range raw {
		var voter model.Voter
		if err := json.Unmarshal(record, &voter); err != nil {
			return voters, fmt.Errorf("%w: voter record failed to parse: %v", ErrMalformedRecord, err)
		}
		voters = append(voters, &voter)
	}
	return voters, nil
}

func (s *ElectionSmartContract) queryBallots(ctx contractapi.TransactionContextInterface, fields map[string]interface{}) ([]*model.Ballot, error) {
	raw, err := s.querySelector(ctx, model.BallotObjectType, fields)
	if err != nil {
		return nil, err
	}
	ballots := []*model.Ballot{}
	for _, record := range raw {
		var ballot model.Ballot
		if err := json.Unmarshal(record, &ballot); err != nil {
			return ballots, fmt.Errorf("%w: ballot record failed to parse: %v", ErrMalformedRecord, err)
		}
		ballots = append(ballots, &ballot)
	}
	return ballots, nil
}

func (s *ElectionSmartContract) queryElections(ctx contractapi.TransactionContextInterface, fields map[string]interface{}) ([]*model.Election, error) {
	raw, err := s.querySelector(ctx, model.ElectionObjectType, fields)
	if err != nil {
		return nil, err
	}
	elections := []*model.Election{}
	for _, record := range raw {
		var election model.Election
		if err := json.Unmarshal(record, &election); err != nil {
			return elections, fmt.Errorf("%w: election record failed to parse: %v", ErrMalformedRecord, err)
		}
		elections = append(elections, &election)
	}
	return elections, nil
}

func (s *ElectionSmartContract) queryCandidats(ctx contractapi.TransactionContextInterface, fields map[string]interface{}) ([]*model.Candidat, error) {
	raw, err := s.querySelector(ctx, model.CandidatObjectType, fields)
	if err != nil {
		return nil, err
	}
	candidats := []*model.Candidat{}
	for _, record := range raw {
		var candidat model.Candidat
		if err := json.Unmarshal(record, &candidat); err != nil {
			return candidats, fmt.Errorf("%w: candidat record failed to parse: %v", ErrMalformedRecord, err)
		}
		candidats = append(candidats, &candidat)
	}
	return candidats, nil
}

// --- Public query surface ---

// QueryWithQueryString runs an arbitrary CouchDB query string and returns the
// matching records as a JSON array.
func (s *ElectionSmartContract) QueryWithQueryString(ctx contractapi.TransactionContextInterface, queryString string) (string, error) {
	queryLogger.Debugf("QueryWithQueryString: %s", queryString)
	if err := s.validateRequiredString(queryString, "queryString", maxDescriptionLength); err != nil {
		return "", err
	}
	results, err := s.queryRaw(ctx, queryString)
	if err != nil {
		return "", fmt.Errorf("QueryWithQueryString: %w", err)
	}
	out, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("QueryWithQueryString: failed to marshal results: %w", err)
	}
	return string(out), nil
}

// QueryByObjectType returns every record of the given type as a JSON array.
func (s *ElectionSmartContract) QueryByObjectType(ctx contractapi.TransactionContextInterface, objectType string) (string, error) {
	queryLogger.Debugf("QueryByObjectType: %s", objectType)
	if err := s.validateRequiredString(objectType, "objectType", maxStringInputLength); err != nil {
		return "", err
	}
	queryString, err := buildSelectorQuery(objectType, nil)
	if err != nil {
		return "", fmt.Errorf("QueryByObjectType: %w", err)
	}
	return s.QueryWithQueryString(ctx, queryString)
}

// QueryAll returns every record on the ledger as a JSON array.
func (s *ElectionSmartContract) QueryAll(ctx contractapi.TransactionContextInterface) (string, error) {
	queryLogger.Debug("QueryAll")
	queryString, err := buildSelectorQuery("", nil)
	if err != nil {
		return "", fmt.Errorf("QueryAll: %w", err)
	}
	return s.QueryWithQueryString(ctx, queryString)
}
