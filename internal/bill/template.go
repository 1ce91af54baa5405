package bill

// Template is the extraction instruction for vendor bill documents. The JSON
// shape here is load-bearing: the builder unmarshals exactly these keys.
const Template = `You MUST respond with ONLY a JSON object in this EXACT format, no explanations or other text:
{
    "vendor_name": "string",
    "invoice_number": "string",
    "date": "YYYY-MM-DD",
    "line_items": [
        {
            "product": "string",
            "description": "string",
            "quantity": number,
            "price": number,
            "subtotal": number
        }
    ],
    "total": number,
    "total_tax": number,
    "total_discount": number
}`
