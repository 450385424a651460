package dilemmafile

import (
	"fmt"

	"github.com/tidwall/gjson"

	"godilemma/domain/core"
	"godilemma/domain/dilemma"
	"godilemma/internal/errors"
)

func parseJSON(data []byte) (*dilemma.Dilemma, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidInput("malformed json dilemma")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.InvalidInput("json dilemma must be an object")
	}

	d := &dilemma.Dilemma{
		ID:          core.DilemmaID(root.Get("id").String()),
		Title:       root.Get("title").String(),
		Description: root.Get("description").String(),
		Parameters:  map[string]dilemma.Parameter{},
	}

	var perr error
	root.Get("parameters").ForEach(func(key, value gjson.Result) bool {
		p, err := jsonParameter(value)
		if err != nil {
			perr = errors.InvalidInput(fmt.Sprintf("parameter %q: %v", key.String(), err))
			return false
		}
		d.Parameters[key.String()] = p
		return true
	})
	if perr != nil {
		return nil, perr
	}

	for _, s := range root.Get("stakeholders").Array() {
		d.Stakeholders = append(d.Stakeholders, dilemma.Stakeholder{
			ID:        s.Get("id").String(),
			Name:      s.Get("name").String(),
			Concerns:  stringList(s.Get("concerns")),
			Influence: s.Get("influence").Float(),
		})
	}
	d.Frameworks = stringList(root.Get("frameworks"))
	for _, f := range root.Get("contextual_factors").Array() {
		d.ContextualFactors = append(d.ContextualFactors, dilemma.ContextualFactor{
			Factor:      f.Get("factor").String(),
			Value:       f.Get("value").String(),
			Relevance:   f.Get("relevance").Float(),
			Explanation: f.Get("explanation").String(),
		})
	}
	for _, a := range root.Get("possible_actions").Array() {
		d.PossibleActions = append(d.PossibleActions, dilemma.Action{
			ID:          a.Get("id").String(),
			Description: a.Get("description").String(),
		})
	}
	if m := root.Get("action_mapping"); m.IsObject() {
		d.ActionMapping = map[string]string{}
		m.ForEach(func(key, value gjson.Result) bool {
			d.ActionMapping[key.String()] = value.String()
			return true
		})
	}
	return d, nil
}

func jsonParameter(v gjson.Result) (dilemma.Parameter, error) {
	if v.IsObject() {
		value := v.Get("value")
		if !value.Exists() {
			return dilemma.Parameter{}, fmt.Errorf("missing value")
		}
		p, err := jsonScalar(value)
		p.Description = v.Get("description").String()
		return p, err
	}
	return jsonScalar(v)
}

func jsonScalar(v gjson.Result) (dilemma.Parameter, error) {
	switch v.Type {
	case gjson.Number:
		return dilemma.NumericParameter(v.Float(), ""), nil
	case gjson.String, gjson.True, gjson.False:
		return dilemma.TextParameter(v.String(), ""), nil
	default:
		return dilemma.Parameter{}, fmt.Errorf("value must be a number, string or boolean")
	}
}

func stringList(v gjson.Result) []string {
	arr := v.Array()
	if len(arr) == 0 {
		return nil
	}
	out := make([]string, len(arr))
	for i, item := range arr {
		out[i] = item.String()
	}
	return out
}
