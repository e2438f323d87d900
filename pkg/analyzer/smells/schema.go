package smells

// ReportSchema is the JSON Schema of a serialized Report.
const ReportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Code smell report",
  "type": "object",
  "required": ["summary", "smells"],
  "properties": {
    "error": {"type": "string", "minLength": 1},
    "summary": {
      "type": "object",
      "required": ["totalLines", "totalSmells"],
      "properties": {
        "totalLines": {"type": "integer", "minimum": 0},
        "totalSmells": {"type": "integer", "minimum": 0}
      },
      "additionalProperties": false
    },
    "smells": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "location", "severity", "reason", "suggestedRefactoring"],
        "properties": {
          "type": {
            "enum": [
              "Long Method", "Long Parameter List", "Large Class", "Primitive Obsession",
              "Data Clumps", "Switch Statements", "Temporary Field", "Refused Bequest",
              "Duplicate Code", "Dead Code", "Lazy Class", "Data Class",
              "Message Chains", "Feature Envy", "Middle Man"
            ]
          },
          "location": {"type": "string", "minLength": 1},
          "severity": {"enum": ["Low", "Medium", "High"]},
          "reason": {"type": "string", "minLength": 1},
          "suggestedRefactoring": {"type": "string", "minLength": 1}
        },
        "additionalProperties": false
      }
    }
  },
  "if": {"required": ["error"]},
  "then": {
    "properties": {
      "summary": {"properties": {"totalSmells": {"const": 0}}},
      "smells": {"maxItems": 0}
    }
  },
  "additionalProperties": false
}`
