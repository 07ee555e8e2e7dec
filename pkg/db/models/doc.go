// Package models defines the persisted entities for the quiz platform.
//
// Delete ordering is database-enforced where a strict ownership chain exists:
// Company cascades to Quiz, Action, and CompanyMembership; Quiz cascades to
// Question, which cascades to Answer. Actions reference two users by plain
// foreign key with NO cascade from users: user deletion cleans up dependent
// actions and membership rows explicitly inside the same transaction, and is
// blocked while the user still owns companies.
package models
