package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"sales/src/sales/application/response"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
)

// RegisterUseCase orquesta una venta completa en una caja:
// start -> enter item* -> end -> [discount] -> pay -> receipt -> sync.
// Una instancia atiende a un solo cajero; no es segura para uso concurrente
type RegisterUseCase struct {
	stationID     string
	currency      string
	catalog       port.ItemCatalog
	inventory     port.InventoryGateway
	accounting    port.AccountingGateway
	renderer      port.ReceiptRenderer
	discountRules *entity.DiscountRules
	cashRegister  *entity.CashRegister
	observers     []port.RevenueObserver

	sale         *entity.Sale
	notifier     *RevenueNotifier
	lastPurchase *response.PurchaseInfo
}

// NewRegisterUseCase crea una nueva instancia del caso de uso.
// Los observers se inyectan acá y se comparten entre todas las ventas de la caja
func NewRegisterUseCase(
	stationID string,
	currency string,
	catalog port.ItemCatalog,
	inventory port.InventoryGateway,
	accounting port.AccountingGateway,
	renderer port.ReceiptRenderer,
	discountRules *entity.DiscountRules,
	observers ...port.RevenueObserver,
) *RegisterUseCase {
	if discountRules == nil {
		discountRules = entity.DefaultDiscountRules()
	}
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	return &RegisterUseCase{
		stationID:     stationID,
		currency:      currency,
		catalog:       catalog,
		inventory:     inventory,
		accounting:    accounting,
		renderer:      renderer,
		discountRules: discountRules,
		cashRegister:  entity.NewCashRegister(),
		observers:     append([]port.RevenueObserver(nil), observers...),
	}
}

// AddRevenueObserver registra un observer para las ventas que se inicien a partir de ahora
func (uc *RegisterUseCase) AddRevenueObserver(obs port.RevenueObserver) {
	uc.observers = append(uc.observers, obs)
}

// StartSale crea una venta nueva. Una venta anterior no sincronizada se descarta
// sin reportarse a los sistemas externos
func (uc *RegisterUseCase) StartSale(ctx context.Context) {
	if uc.sale != nil && uc.sale.State() != entity.SaleStateSynced {
		log.Printf("⚠️  Station %s: discarding unsynced sale %s (state=%s)", uc.stationID, uc.sale.ID, uc.sale.State())
	}
	uc.sale = entity.NewSale(uc.currency)
	uc.notifier = NewRevenueNotifier(uc.observers)
	uc.lastPurchase = nil
	log.Printf("🛒 Station %s: sale %s started (%d revenue observers)", uc.stationID, uc.sale.ID, uc.notifier.Len())
}

// EnterItem busca el item en el catálogo, lo agrega a la venta y notifica el nuevo running total.
// ErrItemNotFound se propaga sin cambios; una falla del catálogo se convierte en OperationFailedError
func (uc *RegisterUseCase) EnterItem(ctx context.Context, itemID, quantity int) (*response.PurchaseInfo, error) {
	if uc.sale == nil {
		return nil, entity.ErrNoActiveSale
	}
	if uc.sale.State() != entity.SaleStateStarted {
		return nil, entity.ErrSaleNotOpen
	}
	if quantity <= 0 {
		return nil, entity.ErrInvalidQuantity
	}

	item, err := uc.catalog.LookupItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, entity.ErrCatalogUnavailable) {
			log.Printf("❌ Station %s: catalog unavailable for item %d: %v", uc.stationID, itemID, err)
			return nil, entity.NewOperationFailedError("could not enter item, please try again", err)
		}
		return nil, err
	}

	line, err := uc.sale.AddItem(*item, quantity)
	if err != nil {
		return nil, err
	}

	info := &response.PurchaseInfo{
		ItemID:       line.ItemID,
		Description:  line.Description,
		Price:        line.UnitPrice,
		Quantity:     line.Quantity,
		RunningTotal: uc.sale.RunningTotal(),
	}
	uc.lastPurchase = info

	// El item queda agregado aunque falle un observer
	if err := uc.notifier.Notify(ctx, uc.sale.ID, info.RunningTotal); err != nil {
		return nil, err
	}
	return info, nil
}

// EndSale cierra la venta con el total del último PurchaseInfo y retorna el monto a pagar.
// Si purchaseInfo es nil se usa el último devuelto por EnterItem
func (uc *RegisterUseCase) EndSale(ctx context.Context, purchaseInfo *response.PurchaseInfo) (entity.Amount, error) {
	if uc.sale == nil {
		return entity.Amount{}, entity.ErrNoActiveSale
	}
	if purchaseInfo == nil {
		purchaseInfo = uc.lastPurchase
	}
	if purchaseInfo == nil {
		return entity.Amount{}, entity.ErrSaleHasNoItems
	}
	total, err := uc.sale.End(purchaseInfo.RunningTotal)
	if err != nil {
		return entity.Amount{}, err
	}
	log.Printf("🧾 Station %s: sale %s ended, amount due %s", uc.stationID, uc.sale.ID, total)
	return total, nil
}

// SignalDiscountRequest abre un pedido de descuento para la venta en curso
func (uc *RegisterUseCase) SignalDiscountRequest(ctx context.Context) error {
	if uc.sale == nil {
		return entity.ErrNoActiveSale
	}
	return uc.sale.RequestDiscount()
}

// EnterCustomerID aplica la regla de descuento y retorna el monto a pagar
func (uc *RegisterUseCase) EnterCustomerID(ctx context.Context, customerID int) (entity.Amount, error) {
	if uc.sale == nil {
		return entity.Amount{}, entity.ErrNoActiveSale
	}
	payable, err := uc.discountRules.CalculatePriceAfterDiscount(customerID, uc.sale)
	if err != nil {
		return entity.Amount{}, err
	}
	log.Printf("🏷️  Station %s: customer %d, discount %q, payable %s", uc.stationID, customerID, uc.sale.Discount().Name, payable)
	return payable, nil
}

// EnterAmountPaid valida el pago contra el total y retorna el vuelto.
// totalPrice debe coincidir con el monto a pagar de la venta
func (uc *RegisterUseCase) EnterAmountPaid(ctx context.Context, payment, totalPrice entity.Amount) (entity.Amount, error) {
	if uc.sale == nil {
		return entity.Amount{}, entity.ErrNoActiveSale
	}
	switch uc.sale.State() {
	case entity.SaleStateEnded:
	case entity.SaleStateStarted:
		return entity.Amount{}, entity.ErrSaleNotEnded
	default:
		return entity.Amount{}, entity.ErrSaleAlreadyPaid
	}

	if !totalPrice.Equal(uc.sale.PayableAmount()) {
		return entity.Amount{}, entity.ErrTotalPriceMismatch
	}

	change, err := uc.cashRegister.AddPayment(payment, totalPrice)
	if err != nil {
		return entity.Amount{}, err
	}
	if err := uc.sale.RecordPayment(payment, change); err != nil {
		return entity.Amount{}, err
	}
	log.Printf("💵 Station %s: sale %s paid %s, change %s", uc.stationID, uc.sale.ID, payment, change)
	return change, nil
}

// ReceiptString retorna el recibo formateado de la venta en curso
func (uc *RegisterUseCase) ReceiptString(ctx context.Context) (string, error) {
	if uc.sale == nil {
		return "", entity.ErrNoActiveSale
	}
	return uc.renderer.Render(uc.sale.Log())
}

// UpdateExternalSystems envía la venta a inventario y contabilidad.
// Las dos llamadas son independientes: si una falla, un reintento solo
// vuelve a enviar la que falló. Con ambas OK la venta se descarta
func (uc *RegisterUseCase) UpdateExternalSystems(ctx context.Context) error {
	if uc.sale == nil {
		return entity.ErrNoActiveSale
	}
	if uc.sale.State() != entity.SaleStatePaid {
		return entity.ErrSaleNotPaid
	}

	saleLog := uc.sale.Log()
	var errs []error

	if !uc.sale.InventoryPosted() {
		if err := uc.inventory.PostInventory(ctx, saleLog); err != nil {
			log.Printf("❌ Station %s: inventory update failed for sale %s: %v", uc.stationID, saleLog.SaleID, err)
			errs = append(errs, fmt.Errorf("inventory: %w", err))
		} else {
			uc.sale.MarkInventoryPosted()
		}
	}

	if !uc.sale.AccountingPosted() {
		if err := uc.accounting.PostAccounting(ctx, saleLog); err != nil {
			log.Printf("❌ Station %s: accounting update failed for sale %s: %v", uc.stationID, saleLog.SaleID, err)
			errs = append(errs, fmt.Errorf("accounting: %w", err))
		} else {
			uc.sale.MarkAccountingPosted()
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", entity.ErrExternalSyncIncomplete, errors.Join(errs...))
	}

	if err := uc.sale.MarkSynced(); err != nil {
		return err
	}
	log.Printf("✅ Station %s: sale %s synced to inventory and accounting", uc.stationID, saleLog.SaleID)
	uc.sale = nil
	uc.notifier = nil
	uc.lastPurchase = nil
	return nil
}

// CurrentState retorna IDLE si no hay venta activa
func (uc *RegisterUseCase) CurrentState() entity.SaleState {
	if uc.sale == nil {
		return entity.SaleStateIdle
	}
	return uc.sale.State()
}

// CurrentSale retorna el registro de la venta activa
func (uc *RegisterUseCase) CurrentSale() (*entity.SaleLog, error) {
	if uc.sale == nil {
		return nil, entity.ErrNoActiveSale
	}
	return uc.sale.Log(), nil
}

// ExternalSyncStatus indica qué sistemas externos ya recibieron la venta activa
func (uc *RegisterUseCase) ExternalSyncStatus() (inventoryPosted, accountingPosted bool) {
	if uc.sale == nil {
		return false, false
	}
	return uc.sale.InventoryPosted(), uc.sale.AccountingPosted()
}

// LastPurchaseInfo retorna el último PurchaseInfo de la venta activa, o nil
func (uc *RegisterUseCase) LastPurchaseInfo() *response.PurchaseInfo {
	return uc.lastPurchase
}

// CashBalance retorna lo acumulado en el cajón desde que se creó la caja
func (uc *RegisterUseCase) CashBalance() entity.Amount {
	return uc.cashRegister.Balance()
}

// StationID identifica la caja dueña de este caso de uso
func (uc *RegisterUseCase) StationID() string {
	return uc.stationID
}
