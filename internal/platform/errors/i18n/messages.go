package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
const (
	CodeUnknown           = "UNKNOWN"
	CodeNotationInvalid   = "NOTATION_INVALID"
	CodeDiceInvalidCount  = "DICE_INVALID_COUNT"
	CodeDiceInvalidSides  = "DICE_INVALID_SIDES"
	CodeDiceInvalidKeep   = "DICE_INVALID_KEEP"
	CodeDiceKeepExceeds   = "DICE_KEEP_EXCEEDS_DICE"
	CodeDiceLimitExceeded = "DICE_LIMIT_EXCEEDED"
	CodeDieUnrolled       = "DIE_UNROLLED"
	CodeDifficultyInvalid = "DIFFICULTY_INVALID"
	CodeScriptFailed      = "SCRIPT_FAILED"
)

var input = []string{"Input"}

var inputReason = []string{"Input", "Reason"}

var enUS = map[string]entry{
	CodeUnknown:           {format: "An unexpected error occurred."},
	CodeNotationInvalid:   {format: "%[1]q is not a valid roll (%[2]s). Use NdX, optionally followed by ^K or vK and +M or -M.", args: inputReason},
	CodeDiceInvalidCount:  {format: "%[1]q must roll at least one die.", args: input},
	CodeDiceInvalidSides:  {format: "%[1]q must use dice with at least one side.", args: input},
	CodeDiceInvalidKeep:   {format: "%[1]q must keep at least one die.", args: input},
	CodeDiceKeepExceeds:   {format: "%[1]q keeps more dice than it rolls.", args: input},
	CodeDiceLimitExceeded: {format: "%[1]q rolls more or larger dice than this server allows.", args: input},
	CodeDieUnrolled:       {format: "A die was read before it was rolled."},
	CodeDifficultyInvalid: {format: "Difficulty must be zero or greater."},
	CodeScriptFailed:      {format: "Script %[1]s failed: %[2]s", args: inputReason},
}

var ptBR = map[string]entry{
	CodeUnknown:           {format: "Ocorreu um erro inesperado."},
	CodeNotationInvalid:   {format: "%[1]q não é uma rolagem válida (%[2]s). Use NdX, seguido opcionalmente de ^K ou vK e +M ou -M.", args: inputReason},
	CodeDiceInvalidCount:  {format: "%[1]q precisa rolar pelo menos um dado.", args: input},
	CodeDiceInvalidSides:  {format: "%[1]q precisa usar dados com pelo menos uma face.", args: input},
	CodeDiceInvalidKeep:   {format: "%[1]q precisa manter pelo menos um dado.", args: input},
	CodeDiceKeepExceeds:   {format: "%[1]q mantém mais dados do que rola.", args: input},
	CodeDiceLimitExceeded: {format: "%[1]q rola mais dados, ou dados maiores, do que este servidor permite.", args: input},
	CodeDieUnrolled:       {format: "Um dado foi lido antes de ser rolado."},
	CodeDifficultyInvalid: {format: "A dificuldade deve ser zero ou maior."},
	CodeScriptFailed:      {format: "O script %[1]s falhou: %[2]s", args: inputReason},
}
