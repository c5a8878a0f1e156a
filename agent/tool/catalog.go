package tool

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// Infos describes every tool to a tool-calling chat model.
func (r *Registry) Infos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(r.specs))
	for _, spec := range r.specs {
		infos = append(infos, &schema.ToolInfo{
			Name:        string(spec.Name),
			Desc:        spec.Description,
			ParamsOneOf: schema.NewParamsOneOfByParams(paramsFor(spec)),
		})
	}
	return infos
}

func paramsFor(spec Spec) map[string]*schema.ParameterInfo {
	switch spec.Input {
	case InputOrderID:
		return map[string]*schema.ParameterInfo{
			"order_id": {Type: schema.String, Desc: "Order id, 7 to 10 digits", Required: true},
		}
	case InputComposite:
		return map[string]*schema.ParameterInfo{
			"input": {Type: schema.String, Desc: "Format: " + expectedInput(spec), Required: true},
		}
	case InputRecord, InputText:
		params := make(map[string]*schema.ParameterInfo, len(spec.Fields))
		for _, f := range spec.Fields {
			params[f.Name] = &schema.ParameterInfo{Type: schema.String, Desc: f.Desc, Required: f.Required}
		}
		return params
	default:
		return map[string]*schema.ParameterInfo{}
	}
}

// Describe renders the catalog for text-grammar prompts, one tool per line.
func (r *Registry) Describe() string {
	var b strings.Builder
	for _, spec := range r.specs {
		fmt.Fprintf(&b, "%s: %s Input: %s.\n", spec.Name, spec.Description, expectedInput(spec))
	}
	return strings.TrimRight(b.String(), "\n")
}

// NameList is the comma separated list of tool names.
func (r *Registry) NameList() string {
	names := make([]string, 0, len(r.specs))
	for _, spec := range r.specs {
		names = append(names, string(spec.Name))
	}
	return strings.Join(names, ", ")
}
