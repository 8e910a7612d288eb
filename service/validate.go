package service

import (
	"ridecarry/pkg/apperr"
	"ridecarry/pkg/models"
)

// validateBookingType checks that a requested booking kind matches the ride's
// kind. Shared between booking creation and payment order creation so the two
// paths can never disagree.
func validateBookingType(ride *models.Ride, requested models.RideType) error {
	if !requested.Valid() {
		return apperr.Validation("Invalid booking type")
	}
	if ride.RideType == models.RideTypeSeat && requested != models.RideTypeSeat {
		return apperr.Validation("This post is passengers-only")
	}
	if ride.RideType == models.RideTypeParcel && requested != models.RideTypeParcel {
		return apperr.Validation("This post is parcel-only")
	}
	return nil
}
