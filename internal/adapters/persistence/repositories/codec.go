package repositories

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"opor-loyalty/internal/core/domain"
)

// SchemaVersion is stamped on every record this build writes.
// Unstamped records are version 1 and may lack usedBenefits/transactions
// on members, tier on benefits and status on complaints.
const SchemaVersion = 2

// ErrNewerSchema marks a record stamped by a later build. Such collections
// are served from seed data on read and never overwritten.
var ErrNewerSchema = errors.New("record written by a newer schema")

func checkVersion(v int) error {
	if v > SchemaVersion {
		return fmt.Errorf("version %d > %d: %w", v, SchemaVersion, ErrNewerSchema)
	}
	return nil
}

// Declared defaults for fields older records may not carry.
var (
	defaultMemberTier      = domain.TierSilver
	defaultBenefitTier     = domain.TierSilver
	defaultComplaintStatus = domain.ComplaintPending
)

// DecodeError reports a stored collection that could not be decoded
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, domain.ErrRecordCorrupt) hold for any DecodeError
func (e *DecodeError) Is(target error) bool {
	return target == domain.ErrRecordCorrupt
}

// memberRecord is the on-store member shape before migration.
// Slice fields stay raw so a malformed value degrades to empty instead of failing the whole collection.
type memberRecord struct {
	SchemaVersion int             `json:"schemaVersion"`
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PhoneNumber   string          `json:"phoneNumber"`
	Tier          domain.Tier     `json:"tier"`
	Points        int             `json:"points"`
	UsedBenefits  json.RawMessage `json:"usedBenefits"`
	Transactions  json.RawMessage `json:"transactions"`
	JoinedDate    string          `json:"joinedDate"`
}

func migrateMember(rec memberRecord) domain.Member {
	m := domain.Member{
		ID:           rec.ID,
		Name:         rec.Name,
		PhoneNumber:  rec.PhoneNumber,
		Tier:         rec.Tier,
		Points:       rec.Points,
		UsedBenefits: []string{},
		Transactions: []domain.Transaction{},
		JoinedDate:   rec.JoinedDate,
	}
	if m.Tier == "" {
		m.Tier = defaultMemberTier
	}

	var used []string
	if err := json.Unmarshal(rec.UsedBenefits, &used); err == nil && used != nil {
		m.UsedBenefits = used
	}
	var txs []domain.Transaction
	if err := json.Unmarshal(rec.Transactions, &txs); err == nil && txs != nil {
		m.Transactions = txs
	}
	return m
}

type benefitRecord struct {
	domain.Benefit
	SchemaVersion int `json:"schemaVersion"`
}

type complaintRecord struct {
	domain.Complaint
	SchemaVersion int `json:"schemaVersion"`
}

func migrateBenefit(b domain.Benefit) domain.Benefit {
	if b.Tier == "" {
		b.Tier = defaultBenefitTier
	}
	if b.ExpiryDate != nil && *b.ExpiryDate == "" {
		b.ExpiryDate = nil
	}
	return b
}

func migrateComplaint(c domain.Complaint) domain.Complaint {
	if c.Status == "" {
		c.Status = defaultComplaintStatus
	}
	return c
}

func decodeMembers(raw string) ([]domain.Member, error) {
	var recs []memberRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, err
	}
	out := make([]domain.Member, len(recs))
	for i, rec := range recs {
		if err := checkVersion(rec.SchemaVersion); err != nil {
			return nil, err
		}
		out[i] = migrateMember(rec)
	}
	return out, nil
}

func decodeBenefits(raw string) ([]domain.Benefit, error) {
	var recs []benefitRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, err
	}
	out := make([]domain.Benefit, len(recs))
	for i, rec := range recs {
		if err := checkVersion(rec.SchemaVersion); err != nil {
			return nil, err
		}
		out[i] = migrateBenefit(rec.Benefit)
	}
	return out, nil
}

func decodeComplaints(raw string) ([]domain.Complaint, error) {
	var recs []complaintRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, err
	}
	out := make([]domain.Complaint, len(recs))
	for i, rec := range recs {
		if err := checkVersion(rec.SchemaVersion); err != nil {
			return nil, err
		}
		out[i] = migrateComplaint(rec.Complaint)
	}
	return out, nil
}

// stamped writes one record with a leading schemaVersion field
type stamped[T any] struct{ item T }

func (s stamped[T]) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(s.item)
	if err != nil {
		return nil, err
	}
	if len(b) < 2 || b[0] != '{' {
		return b, nil
	}
	head := []byte(fmt.Sprintf(`{"schemaVersion":%d`, SchemaVersion))
	body := bytes.TrimSpace(b[1:])
	if len(body) > 0 && body[0] != '}' {
		head = append(head, ',')
	}
	return append(head, body...), nil
}

// encode always produces a JSON array of stamped records, never null
func encode[T any](items []T) (string, error) {
	out := make([]stamped[T], len(items))
	for i := range items {
		out[i] = stamped[T]{item: items[i]}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
