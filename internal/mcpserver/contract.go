package mcpserver

// RecordShapeContract describes the interaction record JSON shape that
// LLM consumers must follow when creating records through the
// create_interaction tool.
const RecordShapeContract = `# Party Interaction Record Shape

Every record passed to create_interaction MUST be a JSON object with this
structure. Fields marked REQUIRED are rejected when missing.

` + "```" + `json
{
  "interactionDate": {                  // REQUIRED
    "startDateTime": "2024-01-01T10:00:00Z",   // REQUIRED, RFC 3339
    "endDateTime": "2024-01-01T10:45:00Z"      // optional
  },
  "description": "Billing complaint",   // REQUIRED
  "reason": "customer called about invoice",   // REQUIRED
  "direction": "inbound",               // REQUIRED: inbound | outbound
  "status": "opened",                   // optional: opened | inProgress | completed | cancelled (default opened)
  "priority": "medium",                 // optional: low | medium | high | urgent (default medium)
  "relatedParty": [                     // optional, order preserved
    {
      "role": "customer",               // customer | agent | supervisor | system
      "partyOrPartyRole": {
        "id": "cust-17",                // REQUIRED per entry
        "name": "Jane Doe",             // REQUIRED per entry
        "referredType": "Individual"    // Individual | Organization | System
      }
    }
  ],
  "interactionItem": [                  // optional; ids generated when absent
    {
      "reason": "invoice dispute",      // REQUIRED per entry
      "itemDate": {"startDateTime": "2024-01-01T10:05:00Z"},
      "status": "pending"               // pending | inProgress | resolved | cancelled
    }
  ],
  "relatedChannel": [                   // optional
    {"role": "primary", "channel": {"name": "phone"}}
    // name: phone | email | chat | store | web | mobile | social
  ],
  "note": [                             // optional; ids and dates generated
    {"text": "called back", "author": "agent-3"}
  ],
  "category": "billing",                // optional
  "tags": ["vip"]                       // optional
}
` + "```" + `

## Rules

1. Never supply "id", "href", "createdAt", "updatedAt", or "duration":
   the service generates them.
2. Enum fields reject values outside their declared sets.
3. Timestamps are RFC 3339 strings.
4. Array order is preserved exactly as supplied.
`
