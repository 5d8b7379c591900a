package output

import (
	"encoding/json"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// JSONFormatter emits the analysis in the same shape the HTTP service returns.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(analysis *domain.RegimeAnalysis) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(analysis, "", "  ")
	}
	return json.Marshal(analysis)
}
