/*
Package syncbuffer decodes MAPI Incremental Change Synchronization (ICS)
transfer buffers, as returned by RopFastTransferSourceGetBuffer.

A buffer is a flat sequence of 32-bit property tags, each followed by a
payload whose shape depends on the tag: nothing for structural markers, an
IDSet for the ICS state properties, XIDs for source and change keys, and a
typed value for everything else. Decode turns a buffer into a Stream of
Nodes; Printer renders a Stream as text.

For more information on the format, see [MS-OXCFXICS].

[MS-OXCFXICS]: https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-oxcfxics
*/
package syncbuffer
