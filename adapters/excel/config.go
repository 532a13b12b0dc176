package excel

// DefaultOutputSheet is the sheet name of exported workbooks
const DefaultOutputSheet = "Data"
