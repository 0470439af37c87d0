// Package usecase casos de uso de la aplicación: el borrador de factura en
// memoria y el catálogo de presets de compañías.
package usecase

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

// LineItemPatch cambios parciales sobre una línea; los campos nil no tocan el
// valor actual. Cantidades y precios negativos se fijan en cero.
type LineItemPatch struct {
	Description *string
	Qty         *float64
	Price       *float64
}

// DraftUseCase borrador único de factura, protegido para acceso concurrente
// desde los handlers HTTP. Todas las mutaciones operan sobre el mismo estado;
// Snapshot devuelve una copia estable para vista previa y exportación.
type DraftUseCase struct {
	mu  sync.RWMutex
	inv entity.Invoice
}

// NewDraftUseCase arranca con el borrador por defecto.
func NewDraftUseCase() *DraftUseCase {
	return &DraftUseCase{inv: entity.NewDraft()}
}

// Snapshot copia independiente del borrador actual.
func (u *DraftUseCase) Snapshot() entity.Invoice {
	u.mu.RLock()
	defer u.mu.RUnlock()
	snap := u.inv
	snap.Items = make([]entity.LineItem, len(u.inv.Items))
	copy(snap.Items, u.inv.Items)
	return snap
}

// Totals totales derivados del estado actual.
func (u *DraftUseCase) Totals() entity.Totals {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.inv.Totals()
}

// AddItem añade una línea en blanco al final y la devuelve.
func (u *DraftUseCase) AddItem() entity.LineItem {
	u.mu.Lock()
	defer u.mu.Unlock()
	it := entity.NewLineItem()
	u.inv.Items = append(u.inv.Items, it)
	return it
}

// UpdateItem aplica un patch a la línea con el id dado.
func (u *DraftUseCase) UpdateItem(id string, patch LineItemPatch) (entity.LineItem, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.inv.Items {
		if u.inv.Items[i].ID != id {
			continue
		}
		it := &u.inv.Items[i]
		if patch.Description != nil {
			it.Description = *patch.Description
		}
		if patch.Qty != nil {
			it.Qty = clampNonNegative(*patch.Qty)
		}
		if patch.Price != nil {
			it.Price = clampNonNegative(*patch.Price)
		}
		return *it, nil
	}
	return entity.LineItem{}, domain.ErrNotFound
}

// RemoveItem elimina la línea con el id dado conservando el orden del resto.
func (u *DraftUseCase) RemoveItem(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.inv.Items {
		if u.inv.Items[i].ID == id {
			u.inv.Items = append(u.inv.Items[:i], u.inv.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// SetAgency reemplaza los datos del emisor.
func (u *DraftUseCase) SetAgency(a entity.Agency) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.Agency = a
}

// SetClient reemplaza los datos del receptor.
func (u *DraftUseCase) SetClient(c entity.Client) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.Client = c
}

// SetMeta reemplaza los metadatos de la factura.
func (u *DraftUseCase) SetMeta(m entity.InvoiceMeta) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.Meta = m
}

// SetNotes reemplaza las notas.
func (u *DraftUseCase) SetNotes(notes string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.Notes = notes
}

// SetTax fija el porcentaje de impuesto (negativo se fija en cero).
func (u *DraftUseCase) SetTax(pct float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.TaxPct = clampNonNegative(pct)
}

// SetDiscount fija el descuento absoluto (negativo se fija en cero).
func (u *DraftUseCase) SetDiscount(amount float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.Discount = clampNonNegative(amount)
}

// SetTheme cambia el tema de la exportación.
func (u *DraftUseCase) SetTheme(mode entity.ThemeMode) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.Theme = mode
}

// SetLogo registra el logo como data URL inline a partir de los bytes subidos.
func (u *DraftUseCase) SetLogo(data []byte, mimeType string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.LogoDataURL = fmt.Sprintf("data:%s;base64,%s",
		mimeType, base64.StdEncoding.EncodeToString(data))
}

// ClearLogo vuelve al placeholder.
func (u *DraftUseCase) ClearLogo() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inv.LogoDataURL = ""
}

// ApplyCompany vuelca un preset sobre el borrador (merge disperso: sólo los
// campos presentes del preset pisan el estado actual).
func (u *DraftUseCase) ApplyCompany(c entity.Company) {
	u.mu.Lock()
	defer u.mu.Unlock()
	c.ApplyTo(&u.inv)
}

func clampNonNegative(v float64) decimal.Decimal {
	if v < 0 {
		v = 0
	}
	return decimal.NewFromFloat(v)
}
