package scanning

// invoicePrompt is the fixed instruction sent alongside every document
const invoicePrompt = `
You are reading an INVOICE IMAGE or PDF.

STRICT RULES:
- Extract ALL line items
- Product name must NEVER be empty
- Quantity defaults to 1 if missing
- Extract tax and total correctly
- Phone number may appear as MOBILE, PHONE, CONTACT

OUTPUT ONLY VALID JSON:

{
  "invoices": [{
    "serialNumber": string,
    "date": string | null,
    "customerName": string | null,
    "productName": string,
    "quantity": number,
    "tax": number,
    "totalAmount": number
  }],
  "products": [{
    "name": string,
    "quantity": number,
    "unitPrice": number,
    "tax": number,
    "priceWithTax": number
  }],
  "customers": [{
    "name": string,
    "phone": string | null,
    "totalPurchaseAmount": number
  }]
}

JSON ONLY. NO EXPLANATION.
`

// DefaultTemperature keeps model output close to deterministic
const DefaultTemperature = 0.1
