package contract

import (
	"errors"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("evote.electioncontract")

// Constants for input validation and limits
const (
	maxStringInputLength = 256
	maxDescriptionLength = 1024

	// dateLayout is the fixed day-granularity wire format (DD-MM-YYYY) used
	// for election start and end dates.
	dateLayout = "02-01-2006"
)

// ErrMalformedRecord marks stored bytes that fail to parse as the expected
// entity. It is a data-corruption fault, distinct from a missing key.
var ErrMalformedRecord = errors.New("malformed record")

// ElectionSmartContract records voters, elections, candidates and ballots on
// the ledger and tallies votes.
// @contract:ElectionSmartContract
type ElectionSmartContract struct {
	contractapi.Contract
}

// Instantiate is called during chaincode instantiation.
func (s *ElectionSmartContract) Instantiate(ctx contractapi.TransactionContextInterface) {
	logger.Info("ElectionSmartContract Instantiated/Upgraded")
}
