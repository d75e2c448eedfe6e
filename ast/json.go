package ast

import (
	"encoding/json"
	"fmt"
	"math"
)

type selectJSON struct {
	Projections []projectionJSON `json:"projections"`
	From        string           `json:"from"`
	Span        [2]int           `json:"span"`
}

type projectionJSON struct {
	Kind     string   `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Raw      string   `json:"raw,omitempty"`
	Decimal  string   `json:"decimal,omitempty"`
	Segments []string `json:"segments,omitempty"`
}

// MarshalJSON encodes the query with one tagged object per projection.
// Numbers carry their exact decimal form; the float value is omitted when it
// is not finite.
func (s *Select) MarshalJSON() ([]byte, error) {
	out := selectJSON{
		Projections: make([]projectionJSON, 0, len(s.Projections)),
		From:        s.From,
		Span:        [2]int{s.Span.Start, s.Span.End},
	}

	for _, p := range s.Projections {
		pj, err := projectionToJSON(p)
		if err != nil {
			return nil, err
		}
		out.Projections = append(out.Projections, pj)
	}

	return json.Marshal(out)
}

func projectionToJSON(p Projection) (projectionJSON, error) {
	switch p := p.(type) {
	case *Star:
		return projectionJSON{Kind: "star"}, nil
	case *Number:
		pj := projectionJSON{Kind: "number", Raw: p.String(), Decimal: p.Decimal().String()}
		if !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0) {
			v := p.Value
			pj.Value = &v
		}
		return pj, nil
	case *String:
		return projectionJSON{Kind: "string", Raw: p.Value}, nil
	case *Identifier:
		return projectionJSON{Kind: "identifier", Name: p.Name}, nil
	case *PathExpr:
		segments := make([]string, 0, len(p.Segments))
		for _, seg := range p.Segments {
			segments = append(segments, seg.String())
		}
		return projectionJSON{Kind: "path", Segments: segments}, nil
	default:
		return projectionJSON{}, fmt.Errorf("unsupported projection %T", p)
	}
}
