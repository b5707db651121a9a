package events

import "applicant-forms/internal/common/validation"

const eventSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type":  {"enum": ["set", "toggle_skill", "select_time", "submit", "back"]},
    "field": {"type": "string", "minLength": 1},
    "value": {"type": "string"},
    "skill": {"type": "string", "minLength": 1},
    "time":  {"type": ["string", "null"], "format": "date-time"}
  },
  "additionalProperties": false,
  "oneOf": [
    {"properties": {"type": {"const": "set"}}, "required": ["field", "value"]},
    {"properties": {"type": {"const": "toggle_skill"}}, "required": ["skill"]},
    {"properties": {"type": {"const": "select_time"}}, "required": ["time"]},
    {"properties": {"type": {"enum": ["submit", "back"]}}}
  ]
}`

const valuesSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "fullName":             {"type": "string"},
    "email":                {"type": "string"},
    "phoneNumber":          {"type": "string"},
    "position":             {"enum": ["", "Developer", "Designer", "Manager"]},
    "relevantExperience":   {"type": "string"},
    "portfolioUrl":         {"type": "string"},
    "managementExperience": {"type": "string"},
    "skills": {
      "type": "array",
      "uniqueItems": true,
      "items": {"enum": ["JavaScript", "CSS", "Python", "React", "Node.js"]}
    },
    "interviewTime": {"type": ["string", "null"], "format": "date-time"}
  },
  "additionalProperties": false
}`

var (
	eventSchema  = validation.MustCompile("event", eventSchemaJSON)
	valuesSchema = validation.MustCompile("values", valuesSchemaJSON)
)
