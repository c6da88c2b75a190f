package solana

import (
	"encoding/base64"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"challenges-backend/models"
)

// transferNative moves lamports between wallets.
func transferNative(lamports uint64, from, to solana.PublicKey) solana.Instruction {
	return system.NewTransferInstruction(lamports, from, to).Build()
}

// transferToken moves SPL token units between token accounts, signed by the
// owning wallet.
func transferToken(amount uint64, source, destination, owner solana.PublicKey) solana.Instruction {
	return token.NewTransferInstruction(amount, source, destination, owner, nil).Build()
}

// serializeUnsigned assembles an unsigned transaction and encodes it the way
// the actions protocol expects: base64, fee payer first, signature slots
// left empty for the client's wallet to fill.
func serializeUnsigned(instructions []solana.Instruction, blockhash solana.Hash, payer solana.PublicKey) (string, error) {
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return "", models.NewUpstreamError("buildTransaction", err)
	}

	// Reserve empty signature slots so wallets see the expected layout.
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", models.NewUpstreamError("serializeTransaction", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
