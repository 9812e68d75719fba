// Package services holds the stateless domain services of fulfillment.
//
// EstimateCalculator turns order lines into a preparation estimate. PickupTokenService
// issues and verifies the single-use pickup secret. FulfillmentMachine strings them
// together around the order aggregate so application handlers call one method per
// transition.
package services
