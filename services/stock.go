package services

// capAddQuantity applies the cap policy used for adds: the requested
// quantity is capped at whatever stock remains after what the cart
// already holds. A result ≤ 0 means nothing can be added; the caller
// either skips (bulk) or fails (single add). A line is never silently
// added with 0.
func capAddQuantity(requested, availableStock, alreadyInCart int) int {
	if requested < 1 {
		requested = 1
	}
	remaining := availableStock - alreadyInCart
	if requested > remaining {
		return remaining
	}
	return requested
}

// checkUpdateQuantity applies the reject policy used for explicit
// quantity updates: over-limit requests fail with the maximum
// permissible quantity, leaving the line unchanged.
func checkUpdateQuantity(requested, availableStock int) *ServiceError {
	if requested < 1 {
		return errInvalidInput("quantity must be at least 1")
	}
	if requested > availableStock {
		return errInsufficientStock(availableStock)
	}
	return nil
}
