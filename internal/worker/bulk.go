package worker

import "fmt"

const bulkReadRetries = 2

// runBulk drives the bulk purchase dialog: Confirm opens the offer, the
// pointer parks over Cancel while the quick price read runs, and the offer
// is either cancelled and reopened or bought once. The lot price is
// compared against maxPrice scaled by the lot size, and a successful buy
// ends the session. Unreadable quick reads get two fast retries before the
// offer is cancelled, since the dialog redraws on every open.
func (w *Worker) runBulk() {
	if !w.waitForFocus() {
		return
	}

	g := w.cfg.Guard()
	lotSize := float64(g.BulkBuyAmount)
	if lotSize < 1 {
		lotSize = 1
	}
	targetPrice := g.BulkMaxPrice * lotSize
	w.record(StateIdle, fmt.Sprintf("bulk target price %.2f", targetPrice))

	for {
		if w.stopRequested() {
			return
		}

		w.transition(StateClickItem, "opening bulk offer")
		if !w.gatedClick("confirm") {
			return
		}
		if !w.sleep(w.cfg.Delays().ItemOpen) {
			return
		}

		if cancel, ok := w.cfg.ROI("cancel"); ok {
			w.clicker.Move("cancel", cancel)
		}

		w.transition(StateCheckPrice, "quick price read")
		reading := w.readPrice("price", balanceAttempts)
		for retries := bulkReadRetries; !reading.Success && retries > 0; retries-- {
			if !w.sleep(w.cfg.Delays().OverlayDismissClick) {
				return
			}
			reading = w.readPrice("price", balanceAttempts)
		}
		if !reading.Success {
			w.record(StateCheckPrice, "price unreadable, cancelling offer")
			if !w.cancelAndWait() {
				return
			}
			continue
		}

		price := reading.Value
		if price > targetPrice {
			w.record(StateCheckPrice,
				fmt.Sprintf("offer at %.2f above target %.2f, cancelling", price, targetPrice))
			if !w.cancelAndWait() {
				return
			}
			continue
		}

		w.transition(StateBuy, fmt.Sprintf("buying lot at %.2f", price))
		if !g.SkipBuyClick {
			if !w.gatedClick("buy") {
				return
			}
		}
		if !w.sleep(w.cfg.Delays().PostOverlayWait) {
			return
		}
		balanceAfter := w.session.Deduct(price)
		w.logTrade(price/lotSize, price, balanceAfter)
		return
	}
}

func (w *Worker) cancelAndWait() bool {
	w.transition(StateCloseAndWait, "cancelling offer")
	if !w.gatedClick("cancel") {
		return false
	}
	return w.sleep(w.cfg.Delays().CloseToItem)
}
