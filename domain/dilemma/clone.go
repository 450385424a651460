package dilemma

import "sort"

// Clone returns a deep structural copy. The copy shares no maps or slices
// with the receiver.
func (d *Dilemma) Clone() *Dilemma {
	if d == nil {
		return nil
	}

	out := &Dilemma{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
	}

	if d.Parameters != nil {
		out.Parameters = make(map[string]Parameter, len(d.Parameters))
		for k, v := range d.Parameters {
			out.Parameters[k] = v
		}
	}

	if d.Stakeholders != nil {
		out.Stakeholders = make([]Stakeholder, len(d.Stakeholders))
		for i, s := range d.Stakeholders {
			s.Concerns = append([]string(nil), s.Concerns...)
			out.Stakeholders[i] = s
		}
	}

	out.Frameworks = append([]string(nil), d.Frameworks...)
	out.ContextualFactors = append([]ContextualFactor(nil), d.ContextualFactors...)
	out.PossibleActions = append([]Action(nil), d.PossibleActions...)

	if d.ActionMapping != nil {
		out.ActionMapping = make(map[string]string, len(d.ActionMapping))
		for k, v := range d.ActionMapping {
			out.ActionMapping[k] = v
		}
	}

	return out
}

// WithParameter returns a copy of d whose numeric parameter name is set to
// value. Only the parameter map is copied; the remaining fields are read-only
// and shared with d.
func (d *Dilemma) WithParameter(name string, value float64) *Dilemma {
	out := *d
	out.Parameters = make(map[string]Parameter, len(d.Parameters)+1)
	for k, v := range d.Parameters {
		out.Parameters[k] = v
	}
	p := out.Parameters[name]
	p.Value = value
	p.Numeric = true
	out.Parameters[name] = p
	return &out
}

// NormalizeConcerns deduplicates and sorts every stakeholder's concerns so
// they behave as sets.
func (d *Dilemma) NormalizeConcerns() {
	for i := range d.Stakeholders {
		seen := make(map[string]struct{}, len(d.Stakeholders[i].Concerns))
		set := make([]string, 0, len(d.Stakeholders[i].Concerns))
		for _, c := range d.Stakeholders[i].Concerns {
			if _, ok := seen[c]; ok || c == "" {
				continue
			}
			seen[c] = struct{}{}
			set = append(set, c)
		}
		sort.Strings(set)
		d.Stakeholders[i].Concerns = set
	}
}
