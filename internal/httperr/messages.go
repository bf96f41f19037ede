package httperr

import "net/http"

// Códigos de erro expostos ao app.
const (
	CodeInvalidRequest       = "invalid_request"
	CodeMissingField         = "missing_field"
	CodeInvalidEmail         = "invalid_email"
	CodeInvalidEmailDomain   = "invalid_email_domain"
	CodeWeakPassword         = "weak_password"
	CodeInvalidCredentials   = "invalid_credentials"
	CodeWrongPassword        = "wrong_password"
	CodeUserDisabled         = "user_disabled"
	CodeTooManyRequests      = "too_many_requests"
	CodeEmailInUse           = "email_already_in_use"
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeInvalidRole          = "invalid_role"
	CodeUserNotFound         = "user_not_found"
	CodeCannotDeactivateSelf = "cannot_deactivate_self"
	CodeNotAClient           = "not_a_client"
	CodeNotAStylist          = "not_a_stylist"
	CodeInvalidPoints        = "invalid_points"
	CodeInsufficientPoints   = "insufficient_points"
	CodeSpecialtyNotFound    = "specialty_not_found"
	CodeSpecialtyExists      = "specialty_already_exists"
	CodeSpecialtyInactive    = "specialty_inactive"
	CodeAlreadyAssigned      = "already_assigned"
	CodeAssignmentNotFound   = "assignment_not_found"
	CodeSlotNotFound         = "slot_not_found"
	CodeInvalidWeekday       = "invalid_weekday"
	CodeInvalidTime          = "invalid_time"
	CodeInvalidTimeRange     = "invalid_time_range"
	CodeSlotOverlap          = "slot_overlap"
	CodeHairProfileNotFound  = "hair_profile_not_found"
	CodeProductNotFound      = "product_not_found"
	CodeInvalidPrice         = "invalid_price"
	CodeInvalidStock         = "invalid_stock"
	CodeInvalidImage         = "invalid_image"
	CodeStorageDisabled      = "storage_disabled"
	CodeNotSupported         = "operation_not_supported"
	CodeNetwork              = "network_request_failed"
	CodeInternal             = "internal_error"
)

type entry struct {
	Status  int
	Message string
}

var catalog = map[string]entry{
	CodeInvalidRequest:       {http.StatusBadRequest, "Dados inválidos na requisição."},
	CodeMissingField:         {http.StatusBadRequest, "Preencha todos os campos obrigatórios."},
	CodeInvalidEmail:         {http.StatusBadRequest, "O e-mail informado é inválido."},
	CodeInvalidEmailDomain:   {http.StatusBadRequest, "O domínio do e-mail informado não parece ser válido."},
	CodeWeakPassword:         {http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres."},
	CodeInvalidCredentials:   {http.StatusUnauthorized, "E-mail ou senha incorretos."},
	CodeWrongPassword:        {http.StatusUnauthorized, "Senha incorreta."},
	CodeUserDisabled:         {http.StatusForbidden, "Esta conta está desativada."},
	CodeTooManyRequests:      {http.StatusTooManyRequests, "Muitas tentativas. Tente novamente mais tarde."},
	CodeEmailInUse:           {http.StatusConflict, "Este e-mail já está em uso."},
	CodeUnauthorized:         {http.StatusUnauthorized, "Sessão inválida. Faça login novamente."},
	CodeForbidden:            {http.StatusForbidden, "Você não tem permissão para esta ação."},
	CodeInvalidRole:          {http.StatusBadRequest, "Perfil de acesso inválido."},
	CodeUserNotFound:         {http.StatusNotFound, "Usuário não encontrado."},
	CodeCannotDeactivateSelf: {http.StatusBadRequest, "Você não pode desativar a própria conta."},
	CodeNotAClient:           {http.StatusBadRequest, "O usuário informado não é um cliente."},
	CodeNotAStylist:          {http.StatusBadRequest, "O usuário informado não é um estilista ativo."},
	CodeInvalidPoints:        {http.StatusBadRequest, "Quantidade de pontos inválida."},
	CodeInsufficientPoints:   {http.StatusBadRequest, "Saldo de pontos insuficiente."},
	CodeSpecialtyNotFound:    {http.StatusNotFound, "Especialidade não encontrada."},
	CodeSpecialtyExists:      {http.StatusConflict, "Já existe uma especialidade com este nome."},
	CodeSpecialtyInactive:    {http.StatusBadRequest, "Especialidade desativada."},
	CodeAlreadyAssigned:      {http.StatusConflict, "O estilista já possui esta especialidade."},
	CodeAssignmentNotFound:   {http.StatusNotFound, "Especialidade não atribuída a este estilista."},
	CodeSlotNotFound:         {http.StatusNotFound, "Horário não encontrado."},
	CodeInvalidWeekday:       {http.StatusBadRequest, "Dia da semana inválido."},
	CodeInvalidTime:          {http.StatusBadRequest, "Horário inválido. Use o formato HH:MM."},
	CodeInvalidTimeRange:     {http.StatusBadRequest, "O horário de início deve ser anterior ao de término."},
	CodeSlotOverlap:          {http.StatusConflict, "Conflito com outro horário do estilista."},
	CodeHairProfileNotFound:  {http.StatusNotFound, "Perfil capilar não encontrado."},
	CodeProductNotFound:      {http.StatusNotFound, "Produto não encontrado."},
	CodeInvalidPrice:         {http.StatusBadRequest, "Preço inválido."},
	CodeInvalidStock:         {http.StatusBadRequest, "Estoque inválido."},
	CodeInvalidImage:         {http.StatusBadRequest, "Imagem inválida ou em formato não suportado."},
	CodeStorageDisabled:      {http.StatusServiceUnavailable, "Armazenamento de arquivos indisponível."},
	CodeNotSupported:         {http.StatusNotImplemented, "Operação não suportada por este provedor de autenticação."},
	CodeNetwork:              {http.StatusBadGateway, "Falha de comunicação com o servidor. Verifique sua conexão."},
	CodeInternal:             {http.StatusInternalServerError, "Erro interno. Tente novamente."},
}

// Lookup devolve status HTTP e mensagem para o código; códigos
// desconhecidos caem em internal_error.
func Lookup(code string) (int, string) {
	if e, ok := catalog[code]; ok {
		return e.Status, e.Message
	}
	e := catalog[CodeInternal]
	return e.Status, e.Message
}

// Known informa se o código possui mensagem cadastrada.
func Known(code string) bool {
	_, ok := catalog[code]
	return ok
}
