package mysql

const approveSQL = `
INSERT INTO review_approvals (review_id)
VALUES (?)
ON DUPLICATE KEY UPDATE approved_at = approved_at
`

const unapproveSQL = `
DELETE FROM review_approvals WHERE review_id = ?
`

const listApprovedSQL = `
SELECT review_id FROM review_approvals ORDER BY review_id
`

// Loose substring containment on the composite id, mirroring the in-memory
// store's filter semantics.
const listApprovedFilteredSQL = `
SELECT review_id FROM review_approvals
WHERE review_id LIKE CONCAT('%', ?, '%')
ORDER BY review_id
`
