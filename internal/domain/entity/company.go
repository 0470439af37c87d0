package entity

// Company preset de cliente descargado de la fuente remota. Name es la clave
// de aplicación y visualización; el resto de campos son opcionales.
type Company struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Currency string `json:"currency,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ApplyTo realiza el merge disperso del preset sobre el borrador: cada campo
// sobrescribe el destino sólo si viene no vacío; los ausentes dejan el estado
// actual intacto.
func (c Company) ApplyTo(inv *Invoice) {
	if c.Name != "" {
		inv.Client.Name = c.Name
	}
	if c.Email != "" {
		inv.Client.Email = c.Email
	}
	if c.Phone != "" {
		inv.Client.Phone = c.Phone
	}
	if c.Address != "" {
		inv.Client.Address = c.Address
	}
	if c.Currency != "" {
		inv.Meta.Currency = c.Currency
	}
	if c.Notes != "" {
		inv.Notes = c.Notes
	}
	if c.Website != "" {
		inv.Agency.Website = c.Website
	}
}
