package i18n

import apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"

var ptBRMessages = map[apperrors.Code]string{
	apperrors.CodeUnknown: "Ocorreu um erro inesperado",

	apperrors.CodeUnauthorized:    "Acesso não autorizado",
	apperrors.CodeUnauthenticated: "É necessário um token de chamada válido",
	apperrors.CodeNotOwner:        "Somente o dono do token pode fazer isso",
	apperrors.CodeNotApproved:     "O marketplace não tem aprovação para transferir este token",

	apperrors.CodeDuplicateAsset:          "Já existe um token com o mesmo {{if .Field}}{{.Field}}{{else}}conteúdo ou título{{end}}",
	apperrors.CodeInvalidAsset:            "Os dados do token são obrigatórios{{if .Field}} ({{.Field}}){{end}}",
	apperrors.CodeInvalidAddress:          "Endereço {{if .Field}}de {{.Field}} {{end}}inválido",
	apperrors.CodeCallerAlreadyConfigured: "O chamador autorizado já foi configurado",

	apperrors.CodeAuctionAlreadyActive: "Já existe um leilão ativo para este token",
	apperrors.CodeNoActiveAuction:      "Não há leilão ativo para este token",
	apperrors.CodeNoBidsPlaced:         "O leilão não recebeu lances",

	apperrors.CodeZeroBid:         "Não é possível dar um lance de valor 0",
	apperrors.CodeSellerCannotBid: "O dono atual do token não pode dar lances",
	apperrors.CodeInvalidSeller:   "Endereço do dono inválido",
	apperrors.CodeBidTooLow:       "Já existe um lance maior",
	apperrors.CodeInvalidAmount:   "Valores devem ser números inteiros não negativos",

	apperrors.CodeZeroWithdrawable: "O valor de saque não pode ser zero",
	apperrors.CodePayoutRejected:   "Um beneficiário recusou o pagamento da liquidação",

	apperrors.CodeLengthMismatch: "Cada colaborador precisa de exatamente uma porcentagem",
	apperrors.CodeInvalidSplit:   "As porcentagens dos colaboradores não podem passar de 100",

	apperrors.CodeInvalidFeeConfig: "Configuração de taxas inválida",
	apperrors.CodeInvalidFilter:    "Filtro de eventos inválido",
	apperrors.CodeConfigMismatch:   "Configuração difere da registrada no marketplace",

	apperrors.CodeNotFound: "O token não existe",
}
