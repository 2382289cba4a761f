package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Contract names one gateway response shape.
type Contract string

const (
	ContractAuth    Contract = "auth"
	ContractSearch  Contract = "search"
	ContractBooking Contract = "booking"
	ContractHistory Contract = "history"
	ContractCancel  Contract = "cancel"
)

var contractSchemas = map[Contract]string{
	ContractAuth: `{
		"type": "object",
		"required": ["token"],
		"properties": {
			"token": {"type": "string", "minLength": 1},
			"email": {"type": ["string", "null"]},
			"role": {"type": ["string", "null"]}
		}
	}`,
	ContractSearch: `{
		"type": "object",
		"required": ["data"],
		"properties": {
			"data": {
				"type": "object",
				"properties": {
					"outboundFlights": {"type": ["array", "null"], "items": {"$ref": "#/definitions/flight"}},
					"returnFlights": {"type": ["array", "null"], "items": {"$ref": "#/definitions/flight"}}
				}
			}
		},
		"definitions": {
			"flight": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "integer"},
					"flightNumber": {"type": ["string", "null"]}
				}
			}
		}
	}`,
	ContractBooking: `{
		"type": "object",
		"properties": {
			"data": {
				"type": ["object", "null"],
				"properties": {
					"pnr": {"type": ["string", "null"]},
					"passengers": {"type": ["array", "null"]}
				}
			}
		}
	}`,
	ContractHistory: `{
		"type": "object",
		"properties": {
			"data": {
				"type": ["array", "null"],
				"items": {
					"type": "object",
					"properties": {
						"pnr": {"type": ["string", "null"]}
					}
				}
			}
		}
	}`,
	ContractCancel: `{
		"type": "object",
		"properties": {
			"message": {"type": ["string", "null"]}
		}
	}`,
}

var (
	compileOnce sync.Once
	compiled    map[Contract]*gojsonschema.Schema
	compileErr  error
)

func schemas() (map[Contract]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[Contract]*gojsonschema.Schema, len(contractSchemas))
		for name, src := range contractSchemas {
			s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
			if err != nil {
				compileErr = fmt.Errorf("contract %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

// CheckResponse validates a raw gateway response body against a contract.
func CheckResponse(contract Contract, body []byte) error {
	all, err := schemas()
	if err != nil {
		return err
	}
	schema, ok := all[contract]
	if !ok {
		return fmt.Errorf("unknown contract %q", contract)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("contract %s: response is not JSON: %w", contract, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("contract %s violated: %s", contract, strings.Join(problems, "; "))
}
