package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/maivenlabs/relevancy/core"
)

// Key prefixes for different data types
const (
	companyRecordPrefix = "comrec"
	policyRecordPrefix  = "polrec"
	policyGeoPrefix     = "polgeo"
)

// makeCompanyKey generates a key for a company record by ID.
func makeCompanyKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", companyRecordPrefix, id))
}

// makePolicyKey generates a key for a policy record by ID.
func makePolicyKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", policyRecordPrefix, id))
}

// makePolicyGeoKey generates a composite key for the geography index.
// Format: prefix:geography:id
func makePolicyGeoKey(geography string, id core.ID) []byte {
	prefix := policyGeoPrefix + ":" + geography + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialPolicyGeoKey generates a partial key for geography scans.
// Format: prefix:geography:
func makePartialPolicyGeoKey(geography string) []byte {
	return []byte(policyGeoPrefix + ":" + geography + ":")
}
