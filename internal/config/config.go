// Package config holds the protocol constants shared by the crypto packages: domain separators, generator salts and
// message magics. Changing any of these values changes every derived hash, generator, proof and message.
package config

const (
	// TranscriptPrefix is written at the start of every Fiat-Shamir transcript.
	TranscriptPrefix = "monero"

	// Generator salts, X = H_p(keccak("seraphis_X")), U = H_p(keccak("seraphis_U")).
	HashKeySeraphisX = "seraphis_X"
	HashKeySeraphisU = "seraphis_U"

	// Dual base vector proof domain separators.
	HashKeyDualBaseVectorProofAggregationCoeff = "dual_base_vector_proof_aggregation_coefficient"
	HashKeyDualBaseVectorProofChallengeMsg     = "dual_base_vector_proof_challenge_message"
	HashKeyDualBaseVectorProofChallenge        = "dual_base_vector_proof_challenge"

	// MultisigPartialCNKeyImageMsgMagicV1 prefixes encoded partial key image messages, and doubles as the domain
	// separator of the hashes bound into them.
	MultisigPartialCNKeyImageMsgMagicV1 = "MultisigPartialCNKIV1"

	// MaxTxExtraRandomFieldSize bounds the value size of randomly generated tx extra elements.
	MaxTxExtraRandomFieldSize = 100
)
