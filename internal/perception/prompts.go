package perception

// The capability prompts. Each asks for a bare JSON object so responses
// decode straight into the models package records; decodeInto tolerates
// models that wrap the object in a markdown fence anyway.

const classifyPrompt = `Analyze these document images and determine with high confidence if this is a business bank statement.
Bank statements are a document that shows the transactions and balance of a business account containing the business's address, account number, bank name, bank logo, bank balance etc.

If it is a bank statement, provide detailed conclusive reasoning explaining what specific elements confirm this classification.
Consider account numbers, transaction listings, bank name, bank logos, heading formats, transaction details, balance information, etc.

If it is NOT a bank statement, provide detailed reasoning identifying what type of document it appears to be and why.

Return a single JSON object with:
- "is_bank_statement": boolean
- "confidence": number between 0-1
- "document_type": the identified document type
- "evidence": list of strings explaining why you classified the document as this type, with specific examples from the document
- "bank_name": name of the bank if identifiable`

const businessDetailsPrompt = `Extract the following information from what appears to be a business bank statement:

1. Business name
2. Business address (complete with postal/zip code if available)
3. Bank/financial institution name
4. Account number (last 4 digits only for security)
5. Statement period (date range)
6. Any business identifiers (like company registration numbers)

Return a single JSON object with the fields "business_name", "business_address", "bank_name", "account_number", "statement_period" and "business_identifiers". If any information is not found, mark it as "not found".`

const financialDataPrompt = `Extract all financial information from this bank statement including:

1. Opening balance with date
2. Closing balance with date
3. All transactions with:
   - Date
   - Description
   - Amount (negative for debits, positive for credits)
   - Running balance if available

Please also include a single overall confidence score (0-1) indicating how confident you are in the accuracy of the entire financial data extraction process.

Return the data as a single JSON object with these categories:
{
    "opening_balance": {"amount": "...", "date": "..."},
    "closing_balance": {"amount": "...", "date": "..."},
    "transactions": [
        {"date": "...", "description": "...", "amount": "...", "running_balance": "..."}
    ],
    "confidence": 0.92
}`

const tamperingPrompt = `Carefully analyze this document for any visual signs of tampering or falsification. Look for:

1. Inconsistent fonts or formatting
2. Misaligned text or tables
3. Signs of text deletion or addition
4. Unusual pixelation or artifacts around text
5. Inconsistent spacing or background
6. Missing necessary information (e.g. the bank's logo)
7. Placeholder text like "XXXX" or "[ENTER TEXT HERE]" in account numbers, transaction amounts etc.

Return your analysis as a single JSON object with:
- "tampering_detected": boolean
- "confidence": number between 0-1 representing how confident you are there's been visual tampering
- "evidence": list of the specific suspicious elements with descriptions
- "suspicious_areas": locations in the document with potential issues`

const structurePrompt = `As a PDF forensic expert, analyze this document structure for signs of tampering:
1. Multiple content streams often indicate layering to hide/overlay content
2. Modification dates different from creation dates suggest editing
3. Suspicious combinations of metadata
4. Inconsistent document structure
5. JavaScript or embedded files are unusual in legitimate financial documents
6. Abnormal object counts (XObjects) may indicate manipulation
7. Font inconsistencies may indicate manipulation
8. Any patterns known to be associated with document forgery

Return a single JSON object with:
- "issues_detected": boolean
- "confidence": number 0-1 (how confident you are tampering exists)
- "findings": list of suspicious elements
- "reasoning": brief but specific explanation of your assessment`
