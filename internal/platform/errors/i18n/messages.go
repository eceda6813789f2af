package i18n

import "golang.org/x/text/language"

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeRoundNotInitialized     = "ROUND_NOT_INITIALIZED"
	CodePlayInClaimingPhase     = "PLAY_IN_CLAIMING_PHASE"
	CodeScoreWithoutRound       = "SCORE_WITHOUT_ROUND"
	CodeScoreInClaimingPhase    = "SCORE_IN_CLAIMING_PHASE"
	CodeClaimWithoutRound       = "CLAIM_WITHOUT_ROUND"
	CodeClaimInPlayingPhase     = "CLAIM_IN_PLAYING_PHASE"
	CodeGamePaused              = "GAME_PAUSED"
	CodeGameNotPaused           = "GAME_NOT_PAUSED"
	CodeKillBeforePausing       = "KILL_BEFORE_PAUSING"
	CodeNotWinnerInGracePeriod  = "NOT_WINNER_IN_GRACE_PERIOD"
	CodeNotAdmin                = "NOT_ADMIN"
	CodeRoundAlreadyInitialized = "ROUND_ALREADY_INITIALIZED"
	CodePoolEmpty               = "POOL_EMPTY"
	CodeProfitEmpty             = "PROFIT_EMPTY"
	CodeKillWithPool            = "KILL_WITH_POOL"
	CodeInsufficientFunds       = "INSUFFICIENT_FUNDS"
	CodeArithmeticOverflow      = "ARITHMETIC_OVERFLOW"
	CodeIdentityInvalid         = "IDENTITY_INVALID"
	CodeCommandInvalid          = "COMMAND_INVALID"
	CodeScoreOutOfRange         = "SCORE_OUT_OF_RANGE"
	CodeNotFound                = "NOT_FOUND"
	CodeFilterInvalid           = "FILTER_INVALID"
	CodePageTokenInvalid        = "PAGE_TOKEN_INVALID"
	CodeCallerRequired          = "CALLER_REQUIRED"
	CodeCallerTokenInvalid      = "CALLER_TOKEN_INVALID"
	CodeCallerTokenExpired      = "CALLER_TOKEN_EXPIRED"
)

var localeMessages = map[language.Tag]map[Code]string{
	language.AmericanEnglish: {
		CodeRoundNotInitialized:     "Round is not initialized",
		CodePlayInClaimingPhase:     "Not in playing phase",
		CodeScoreWithoutRound:       "Not in scoring phase",
		CodeScoreInClaimingPhase:    "Not in scoring phase",
		CodeClaimWithoutRound:       "Not in claiming phase",
		CodeClaimInPlayingPhase:     "Not in claiming phase",
		CodeGamePaused:              "Game paused",
		CodeGameNotPaused:           "Game not paused",
		CodeKillBeforePausing:       "Game still running",
		CodeNotWinnerInGracePeriod:  "Only the winner can claim until {{.GraceEndsAt}}",
		CodeNotAdmin:                "Only admin",
		CodeRoundAlreadyInitialized: "Round already initialized",
		CodePoolEmpty:               "Pool is empty",
		CodeProfitEmpty:             "Commission is empty",
		CodeKillWithPool:            "Pool is not empty",
		CodeInsufficientFunds:       "Account {{.Account}} has insufficient funds",
		CodeArithmeticOverflow:      "Arithmetic overflow computing {{.Field}}",
		CodeIdentityInvalid:         "Caller identity is invalid",
		CodeCommandInvalid:          "Unsupported round command",
		CodeScoreOutOfRange:         "Score must be at most {{.Max}}",
		CodeNotFound:                "Not found",
		CodeFilterInvalid:           "Invalid filter: {{.Filter}}",
		CodePageTokenInvalid:        "Invalid page token",
		CodeCallerRequired:          "Caller identity is required",
		CodeCallerTokenInvalid:      "Caller token is invalid",
		CodeCallerTokenExpired:      "Caller token is expired",
	},
	language.BrazilianPortuguese: {
		CodeRoundNotInitialized:     "A rodada não foi inicializada",
		CodePlayInClaimingPhase:     "Fora da fase de jogo",
		CodeScoreWithoutRound:       "Fora da fase de pontuação",
		CodeScoreInClaimingPhase:    "Fora da fase de pontuação",
		CodeClaimWithoutRound:       "Fora da fase de resgate",
		CodeClaimInPlayingPhase:     "Fora da fase de resgate",
		CodeGamePaused:              "Jogo pausado",
		CodeGameNotPaused:           "Jogo não está pausado",
		CodeKillBeforePausing:       "Jogo ainda em andamento",
		CodeNotWinnerInGracePeriod:  "Somente o vencedor pode resgatar até {{.GraceEndsAt}}",
		CodeNotAdmin:                "Somente o administrador",
		CodeRoundAlreadyInitialized: "Rodada já inicializada",
		CodePoolEmpty:               "O prêmio está vazio",
		CodeProfitEmpty:             "A comissão está vazia",
		CodeKillWithPool:            "O prêmio não está vazio",
		CodeInsufficientFunds:       "A conta {{.Account}} não tem saldo suficiente",
		CodeArithmeticOverflow:      "Estouro aritmético ao calcular {{.Field}}",
		CodeIdentityInvalid:         "Identidade do chamador inválida",
		CodeCommandInvalid:          "Comando de rodada não suportado",
		CodeScoreOutOfRange:         "A pontuação deve ser no máximo {{.Max}}",
		CodeNotFound:                "Não encontrado",
		CodeFilterInvalid:           "Filtro inválido: {{.Filter}}",
		CodePageTokenInvalid:        "Token de página inválido",
		CodeCallerRequired:          "A identidade do chamador é obrigatória",
		CodeCallerTokenInvalid:      "Token do chamador inválido",
		CodeCallerTokenExpired:      "Token do chamador expirado",
	},
}
