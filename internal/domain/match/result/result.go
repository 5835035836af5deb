// Package result holds ranked agency matches.
package result

import (
	"encoding/json"
	"fmt"

	"github.com/gtmquest/agencymatch/internal/domain/agency"
)

// Scored is an agency with its relevance score and the reasons behind it.
type Scored struct {
	Agency  agency.Agency
	Score   int
	Reasons []string
}

// MarshalJSON flattens the agency fields next to match_score and match_reasons.
func (s Scored) MarshalJSON() ([]byte, error) {
	reasons := s.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	data, err := json.Marshal(struct {
		agency.Agency
		MatchScore   int      `json:"match_score"`
		MatchReasons []string `json:"match_reasons"`
	}{s.Agency, s.Score, reasons})
	if err != nil {
		return nil, fmt.Errorf("marshal scored agency: %w", err)
	}
	return data, nil
}

// UnmarshalJSON reads the flattened form written by MarshalJSON.
func (s *Scored) UnmarshalJSON(data []byte) error {
	var v struct {
		agency.Agency
		MatchScore   int      `json:"match_score"`
		MatchReasons []string `json:"match_reasons"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal scored agency: %w", err)
	}
	s.Agency = v.Agency
	s.Score = v.MatchScore
	s.Reasons = v.MatchReasons
	if s.Reasons == nil {
		s.Reasons = []string{}
	}
	return nil
}
