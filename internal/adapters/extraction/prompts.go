package extraction

const fieldsPrompt = `1. Leverandørnavn (firma som sender fakturaen)
2. Fakturanummer
3. Fakturadato (i ISO format YYYY-MM-DD)
4. Totalt beløp (inkludert MVA)
5. MVA-beløp (hvis oppgitt)
6. Beskrivelse av varer/tjenester

Svar BARE med valid JSON i dette formatet (ingen annen tekst):
{
  "supplierName": "Leverandør AS",
  "invoiceNumber": "FAK-123",
  "date": "2024-01-15",
  "amount": 1250.00,
  "vatAmount": 250.00,
  "description": "Beskrivelse av varer/tjenester",
  "confidence": "high|medium|low"
}

Hvis du ikke finner en verdi, bruk null. Sett confidence basert på hvor sikker du er på dataene.`

const imagePrompt = "Analyser dette fakturabildetet og ekstrahér følgende informasjon på norsk:\n\n" + fieldsPrompt

const textPrompt = "Analyser denne fakturateksten og ekstrahér følgende informasjon på norsk:\n\n" + fieldsPrompt + "\n\nFakturatekst:\n"

// responseSchema bounds what we accept back from the model before it reaches the domain.
const responseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["amount"],
  "properties": {
    "supplierName": {"type": ["string", "null"]},
    "invoiceNumber": {"type": ["string", "null"]},
    "date": {"type": ["string", "null"], "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
    "amount": {"type": ["number", "null"]},
    "vatAmount": {"type": ["number", "null"]},
    "description": {"type": ["string", "null"]},
    "confidence": {"enum": ["high", "medium", "low", null]}
  }
}`
