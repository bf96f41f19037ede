package role

import "strings"

type Role string

const (
	Admin   Role = "admin"
	Stylist Role = "stylist"
	Client  Role = "client"
)

// aliases aceitos na entrada; o valor persistido é sempre o canônico
var aliases = map[string]Role{
	"admin":         Admin,
	"administrador": Admin,
	"stylist":       Stylist,
	"estilista":     Stylist,
	"cabeleireiro":  Stylist,
	"client":        Client,
	"cliente":       Client,
}

func Parse(s string) (Role, bool) {
	r, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

func (r Role) Valid() bool {
	switch r {
	case Admin, Stylist, Client:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ===============================
// Permissions
// ===============================

type Permission string

const (
	UsersRead        Permission = "users:read"
	UsersWrite       Permission = "users:write"
	ClientsRead      Permission = "clients:read"
	LoyaltyWrite     Permission = "loyalty:write"
	SpecialtiesWrite Permission = "specialties:write"
	SlotsWriteAny    Permission = "slots:write"
	SlotsWriteSelf   Permission = "slots:write:self"
	HairProfilesRead Permission = "hair_profiles:read"
	HairProfileWrite Permission = "hair_profiles:write"
	HairProfileSelf  Permission = "hair_profiles:self"
	ProductsWrite    Permission = "products:write"
	AuditRead        Permission = "audit:read"
)

var permissions = map[Role][]Permission{
	Admin: {
		UsersRead, UsersWrite, ClientsRead, LoyaltyWrite,
		SpecialtiesWrite, SlotsWriteAny,
		HairProfilesRead, HairProfileWrite,
		ProductsWrite, AuditRead,
	},
	Stylist: {
		ClientsRead, LoyaltyWrite, SlotsWriteSelf,
		HairProfilesRead, HairProfileWrite,
	},
	Client: {
		HairProfileSelf,
	},
}

func Can(r Role, p Permission) bool {
	for _, granted := range permissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// ===============================
// Menu
// ===============================

type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var menus = map[Role][]MenuItem{
	Admin: {
		{Key: "users", Label: "Usuários"},
		{Key: "stylists", Label: "Estilistas"},
		{Key: "specialties", Label: "Especialidades"},
		{Key: "slots", Label: "Horários"},
		{Key: "products", Label: "Produtos"},
		{Key: "audit", Label: "Auditoria"},
	},
	Stylist: {
		{Key: "my-slots", Label: "Meus horários"},
		{Key: "my-specialties", Label: "Minhas especialidades"},
		{Key: "clients", Label: "Clientes"},
		{Key: "products", Label: "Produtos"},
	},
	Client: {
		{Key: "profile", Label: "Meu perfil"},
		{Key: "hair-profile", Label: "Perfil capilar"},
		{Key: "loyalty", Label: "Pontos de fidelidade"},
		{Key: "products", Label: "Produtos"},
	},
}

// Menu devolve os itens de navegação liberados para o papel.
func Menu(r Role) []MenuItem {
	items := menus[r]
	out := make([]MenuItem, len(items))
	copy(out, items)
	return out
}
