// Package models defines the core domain models for splitledger.
//
// # Persistent Models
//
//   - User: Registered account with a display name and preferred currency
//   - Group: A set of users who share expenses
//   - Membership: Links a user to a group
//   - Expense: A shared expense paid by one user and split among participants
//   - Payment: A settlement transfer between two users
//
// # Derived Models
//
// The following models are computed per request by the balance engine and
// never persisted:
//
//   - BalanceSummary / CounterpartyBalance: per-counterparty view of what a
//     user owes and is owed
//   - SimplifiedDebt: one directed transfer in a simplified settlement plan
//
// # Design Principles
//
// 1. **Plain data**: models carry no behavior beyond trivial constructors
// 2. **Avoid circular references**: relationships use ID strings, not pointers
// 3. **Exact money**: amounts are decimal.Decimal; storage and the engine
// work in integer cents (see the money package)
package models
