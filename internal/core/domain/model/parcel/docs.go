// Package parcel provides the domain model for one shipment unit ("colis"):
// the Parcel aggregate root, the closed Status enumeration, the role-keyed
// transition tables, the append-only status History and the CRBT Tariff
// breakdown.
//
// Key business rules:
//   - Parcels enter the system in New status at merchant intake
//   - Status changes go exclusively through Parcel.ApplyTransition and are
//     gated by the acting role's transition table
//   - Scheduled/Postponed transitions carry a mandatory date and keep the
//     two dates mutually exclusive
//   - Outcome and contact-attempt statuses require an operator comment
//   - The history is append-only; it is never edited or reordered
//   - Delivered, Cancelled and Closed are terminal: no role may leave them
package parcel
