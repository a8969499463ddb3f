package llm

// ExtractionPrompt instructs the model to return strict JSON so the
// response can be unmarshalled without post-processing.
const ExtractionPrompt = `You are a medical document parser. Given the text of a medical document,
classify it and extract its structured content.

Respond with a single JSON object and nothing else, using this shape:
{
  "document_type": "lab_report" | "prescription" | "other",
  "fields": {
    // for lab_report: "tests": [{"name", "value", "unit", "reference_range"}]
    // for prescription: "medications": [{"name", "dosage", "frequency", "duration"}]
    // for other: any key findings as flat key/value pairs
  }
}

If a value is absent in the document, omit the key. Never invent values.

Document text:
`
